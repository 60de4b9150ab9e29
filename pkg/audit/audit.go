package audit

// QueryData is one submitted search query.
type QueryData struct {
	Query     string
	User      string
	RequestID string
	Timestamp int64
}

type Audit interface {
	Write(*QueryData) error
}
