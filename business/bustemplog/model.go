package bustemplog

import "time"

type Reading struct {
	EntityId    string
	Timestamp   time.Time
	Temperature float32

	//these are filled in by the journal and should be left blank on Create
	DbAutoId            int
	ExecutionIdentifier string
}
