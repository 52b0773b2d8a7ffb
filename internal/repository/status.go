package repository

type ReservationStatus string

const (
	StatusReserved  ReservationStatus = "RESERVED"
	StatusStored    ReservationStatus = "STORED"
	StatusCompleted ReservationStatus = "COMPLETED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

var transitions = map[ReservationStatus][]ReservationStatus{
	StatusReserved:  {StatusStored, StatusCancelled, StatusCompleted},
	StatusStored:    {StatusCompleted},
	StatusCompleted: nil,
	StatusCancelled: nil,
}

func (s ReservationStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive reports whether the status still commits store capacity.
func (s ReservationStatus) IsActive() bool {
	return s == StatusReserved || s == StatusStored
}

func (s ReservationStatus) String() string {
	return string(s)
}

// CanTransition reports whether from -> to is a legal lifecycle step.
func CanTransition(from, to ReservationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ActiveStatuses are the statuses counted by capacity commitment.
var ActiveStatuses = []string{string(StatusReserved), string(StatusStored)}

type StorageStatus string

const (
	StorageStored    StorageStatus = "STORED"
	StorageRetrieved StorageStatus = "RETRIEVED"
)
