package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type (
	Email    = string
	Password = string
	Username = string

	UserId     = primitive.ObjectID
	CategoryId = primitive.ObjectID
	BoardId    = primitive.ObjectID
	ThreadId   = primitive.ObjectID
	PostId     = primitive.ObjectID

	Topic       = string
	PostContent = string
)
