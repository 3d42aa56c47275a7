package domain

// Counter backs sequential display identifiers (studentId). The document
// _id is the counter name.
type Counter struct {
	Name     string `bson:"_id" json:"name"`
	Sequence int64  `bson:"sequence" json:"sequence"`
}
