package photofeed

// feedResponse represents one page of the photo feed API.
type feedResponse struct {
	PageInfo pageInfo `json:"pageInfo"`
	Photos   []photo  `json:"photos"`
}

type pageInfo struct {
	Page     int `json:"page"`
	NumPages int `json:"numPages"`
	PageSize int `json:"pageSize"`
}

type photo struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	CreatedAt   string   `json:"createdAt"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	ImageURL    string   `json:"imageUrl"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}
