package reputation

import "time"

type ScoreDTO struct {
	Kind      string    `json:"kind"`
	Holder    string    `json:"holder"`
	Value     int64     `json:"value"`
	Max       int64     `json:"max"`
	UpdatedAt time.Time `json:"updated_at"`
}
