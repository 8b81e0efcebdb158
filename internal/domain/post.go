package domain

import "time"

type Post struct {
	Id        PostId         `json:"id" bson:"_id,omitempty"`
	Content   PostContent    `json:"content" bson:"content"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	Author    AuthorSnapshot `json:"author" bson:"author"`
	Thread    ThreadSnapshot `json:"thread" bson:"thread"`
}

// to iterate thru layers: handler -> service -> storage
type PostCreationData struct {
	Content  PostContent
	AuthorId UserId
	ThreadId ThreadId
}
