package pipeline

// Status represents the outcome state of a batch item.
type Status string

const (
	StatusPending  Status = "pending"
	StatusUploaded Status = "uploaded"
	StatusFailed   Status = "failed"
)

// ItemResult records the outcome for one source item.
type ItemResult struct {
	Source string
	Link   string
	Status Status
	Err    error
}

func NewItemResult(src string) ItemResult {
	return ItemResult{Source: src, Status: StatusPending}
}

func (r *ItemResult) Succeed(link string) {
	r.Status = StatusUploaded
	r.Link = link
}

func (r *ItemResult) Fail(err error) {
	r.Status = StatusFailed
	r.Err = err
}
