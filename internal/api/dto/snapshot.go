package dto

type CreateSnapshotResponse struct {
	Key string `json:"key"`
}
