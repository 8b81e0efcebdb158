package domain

type Board struct {
	Id          BoardId `json:"id" bson:"_id,omitempty"`
	Topic       Topic   `json:"topic" bson:"topic"`
	Description string  `json:"description" bson:"description"`
	// Copied from the owning category at create/move time; never updated on rename.
	Category CategorySnapshot `json:"category" bson:"category"`
	Threads  []ThreadId       `json:"threads" bson:"threads"`
}

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Topic       Topic
	Description string
	CategoryId  CategoryId
}

// BoardUpdateData carries field changes and an optional category move.
// A nil CategoryId leaves the board in its current category.
type BoardUpdateData struct {
	Topic       Topic
	Description string
	CategoryId  *CategoryId
}
