package entity

// Snapshot is the last configuration actually applied to a live engine.
// It is replaced wholesale after every heavy render.
type Snapshot struct {
	Config  Configuration
	Logo    string
	Payload string
}

func NewSnapshot(cfg Configuration, logo *Logo, payload string) *Snapshot {
	return &Snapshot{
		Config:  cfg,
		Logo:    logo.Fingerprint(),
		Payload: payload,
	}
}
