package domain

import "time"

type Thread struct {
	Id        ThreadId       `json:"id" bson:"_id,omitempty"`
	Topic     Topic          `json:"topic" bson:"topic"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	Author    AuthorSnapshot `json:"author" bson:"author"`
	Board     BoardSnapshot  `json:"board" bson:"board"`
	Posts     []PostId       `json:"posts" bson:"posts"`
	// Most recent post, nil until the first post arrives.
	LastPost *PostId `json:"lastPost" bson:"lastPost"`
}

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Topic    Topic
	AuthorId UserId
	BoardId  BoardId
}
