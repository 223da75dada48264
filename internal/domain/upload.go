package domain

// Upload is one entry of a creator's upload list as reported by the catalog.
type Upload struct {
	ID              int64  `json:"aid"`
	AltID           string `json:"bvId"`
	DurationSeconds int64  `json:"liveDuration"`
	PublishTime     int64  `json:"publishTime"` // epoch ms
	Title           string `json:"title"`

	// TitleChanged marks an upload that is already stored under a different title.
	// It is cleared before the record is persisted.
	TitleChanged bool `json:"titleChanged,omitempty"`
}

// Page is one page of the catalog listing, newest first.
type Page struct {
	Uploads  []Upload
	Number   int
	PageSize int
	Total    int
	HasNext  bool
}

// PageCount is the upper bound of pages needed to list Total uploads.
func (p Page) PageCount() int {
	return PageCount(p.Total, p.PageSize)
}

func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Batch is the output of one incremental fetch.
type Batch struct {
	// Uploads are ordered newest first.
	Uploads []Upload
	// HeadID is the most recent upload fetched as a new candidate, 0 if none.
	HeadID int64
	Pages  int
}

// TitleChangedCount returns how many uploads in the batch are title corrections.
func (b *Batch) TitleChangedCount() int {
	n := 0
	for _, u := range b.Uploads {
		if u.TitleChanged {
			n++
		}
	}
	return n
}
