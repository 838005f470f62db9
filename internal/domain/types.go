package domain

// Prop is a physical inventory item with metadata and zero or more attached
// photos. PhotoFiles holds generated filenames in the photo store; its JSON
// name "file" is the wire name clients already depend on.
type Prop struct {
	ID          int64    `json:"id"`
	Location    string   `json:"location"`
	StorageID   string   `json:"storageId"`
	Description string   `json:"description"`
	Keywords    string   `json:"keywords"`
	Category    string   `json:"category"`
	Status      string   `json:"status"`
	Quantity    int      `json:"quantity"`
	PhotoFiles  []string `json:"file"`
	Timestamp   string   `json:"timestamp"`
}

// Location is a named place. Prop.Location is free text and is not checked
// against this list.
type Location struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
