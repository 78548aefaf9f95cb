package playback

type Status string

const (
	StatusStopped Status = "stopped"
	StatusLoading Status = "loading"
	StatusPlaying Status = "playing"
	StatusPaused  Status = "paused"
)

// NowPlaying is the single record describing the current audio session.
// Text fields are pointers so that "never reported" (nil) can be told apart
// from "explicitly cleared by the sender" (pointer to an empty string).
type NowPlaying struct {
	Title      *string
	Artist     *string
	Album      *string
	Genre      *string
	ClientName *string
	Artwork    []byte
	Volume     *float64
	State      Status
}

// IsPlaying is derived from State rather than stored so the two can
// never drift apart.
func (np NowPlaying) IsPlaying() bool {
	return np.State == StatusPlaying
}
