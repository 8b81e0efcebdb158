package domain

import "time"

type User struct {
	Id       UserId    `json:"id" bson:"_id,omitempty"`
	Username Username  `json:"username" bson:"username"`
	Email    Email     `json:"email" bson:"email"`
	PassHash string    `json:"-" bson:"passHash"`
	JoinedAt time.Time `json:"joinedAt" bson:"joinedAt"`
	// Authoritative ownership lists, insertion-ordered.
	Threads []ThreadId `json:"threads" bson:"threads"`
	Posts   []PostId   `json:"posts" bson:"posts"`
}

// to iterate thru layers: handler -> service -> storage
type UserCreationData struct {
	Username Username
	Email    Email
	Password Password
}

type Credentials struct {
	Email    Email
	Password Password
}
