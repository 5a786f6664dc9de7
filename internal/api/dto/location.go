package dto

type LocationResponse struct {
	LocationID string   `json:"location_id"`
	Label      string   `json:"label"`
	Retailer   string   `json:"retailer"`
	Category   string   `json:"category"`
	Address    string   `json:"address"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	Zip        string   `json:"zip"`
	Phone      string   `json:"phone"`
	Contact    string   `json:"contact"`
	Suppliers  []string `json:"suppliers"`
	Lon        float64  `json:"lon"`
	Lat        float64  `json:"lat"`
}

type ListLocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
}

type FilterRequest struct {
	States     []string `json:"states"`
	Retailers  []string `json:"retailers"`
	Categories []string `json:"categories"`
	Suppliers  []string `json:"suppliers"`
}

type RetailerSummaryResponse struct {
	Retailer   string   `json:"retailer"`
	Count      int      `json:"count"`
	States     []string `json:"states"`
	Suppliers  []string `json:"suppliers"`
	Categories []string `json:"categories"`
}

type FilterResponse struct {
	Locations []LocationResponse        `json:"locations"`
	Summary   []RetailerSummaryResponse `json:"retailer_summary"`
}
