package domain

import "time"

type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name}
}
