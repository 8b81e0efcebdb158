package domain

// BoardCategory groups boards on the front page. Its board list is the
// authoritative record of which boards belong to it.
type BoardCategory struct {
	Id        CategoryId `json:"id" bson:"_id,omitempty"`
	Topic     Topic      `json:"topic" bson:"topic"`
	SortOrder int        `json:"sortOrder" bson:"sortOrder"`
	Boards    []BoardId  `json:"boards" bson:"boards"`
}

// to iterate thru layers: handler -> service -> storage
type CategoryCreationData struct {
	Topic     Topic
	SortOrder int
}

type CategoryUpdateData struct {
	Topic     Topic
	SortOrder int
}
