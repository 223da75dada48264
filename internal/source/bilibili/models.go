package bilibili

// APIResponse is the envelope of every catalog response.
type APIResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Data    *ArchiveList `json:"data"`
}

type ArchiveList struct {
	Archives []Archive `json:"archives"`
	Page     PageInfo  `json:"page"`
}

type PageInfo struct {
	Num   int `json:"num"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

type Archive struct {
	AID      int64  `json:"aid"`
	BVID     string `json:"bvid"`
	Duration int64  `json:"duration"`
	PubDate  int64  `json:"pubdate"` // unix seconds
	Title    string `json:"title"`
}
