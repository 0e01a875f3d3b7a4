package dto

type IndexSyncResponse struct {
	Triggered bool `json:"triggered"`
}

type IndexResetResponse struct {
	Reset bool `json:"reset"`
}

type ModelListResponse struct {
	Models []string `json:"models"`
}
