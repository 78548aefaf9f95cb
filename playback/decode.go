package playback

import (
	"fmt"
	"strconv"
	"strings"
)

type Field string

const (
	FieldTitle      Field = "title"
	FieldArtist     Field = "artist"
	FieldAlbum      Field = "album"
	FieldGenre      Field = "genre"
	FieldClientName Field = "client_name"
)

type Kind int

const (
	KindText Kind = iota
	KindVolume
	KindArtwork
	KindTransition
)

// Instruction is the typed result of decoding one feed delivery,
// ready to be applied to a Store. Exactly one kind is meaningful
// per instruction.
type Instruction struct {
	Kind    Kind
	Field   Field // KindText only
	Text    string
	Volume  float64
	Artwork []byte
	State   Status
}

type decodeRule func(payload []byte) (Instruction, error)

// rules maps topic suffixes to their decode behaviour. Adding a new
// metadata fragment means adding one entry here; the Store never needs
// to change. Suffixes shairport-sync publishes that carry no playback
// state (active_start, ssnc diagnostics and so on) are simply absent
// and fall through to the ignored path.
var rules = map[string]decodeRule{
	"title":       textRule(FieldTitle),
	"artist":      textRule(FieldArtist),
	"album":       textRule(FieldAlbum),
	"genre":       textRule(FieldGenre),
	"client_name": textRule(FieldClientName),
	"volume":      decodeVolume,
	"cover":       decodeArtwork,
	"artwork":     decodeArtwork,
	"play_state":  decodeStateToken,
	"play_start":  transitionRule(StatusPlaying),
	"play_resume": transitionRule(StatusPlaying),
	"play_end":    transitionRule(StatusStopped),
	"play_flush":  transitionRule(StatusStopped),
	"pause":       transitionRule(StatusPaused),
	"active_end":  transitionRule(StatusStopped),
}

// Decode translates one (topic suffix, payload) delivery into an
// Instruction. The second return is false when the suffix is outside the
// known vocabulary, which is a legitimate delivery to skip rather than an
// error. A non-nil error means the suffix was recognised but the payload
// was malformed; the caller should report it and move on. Decode performs
// no I/O and holds no state.
func Decode(suffix string, payload []byte) (Instruction, bool, error) {
	rule, ok := rules[suffix]
	if !ok {
		return Instruction{}, false, nil
	}
	instruction, err := rule(payload)
	if err != nil {
		return Instruction{}, true, err
	}
	return instruction, true, nil
}

func textRule(field Field) decodeRule {
	return func(payload []byte) (Instruction, error) {
		// An empty payload is an explicit clear, not a delivery to drop
		return Instruction{Kind: KindText, Field: field, Text: string(payload)}, nil
	}
}

func decodeVolume(payload []byte) (Instruction, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(string(payload)), 64)
	if err != nil {
		return Instruction{}, fmt.Errorf("parsing volume %q: %w", payload, err)
	}
	return Instruction{Kind: KindVolume, Volume: value}, nil
}

func decodeArtwork(payload []byte) (Instruction, error) {
	// The broker client may reuse its payload buffer between deliveries
	// so the bytes are copied before they leave the decoder
	var artwork []byte
	if len(payload) > 0 {
		artwork = append([]byte(nil), payload...)
	}
	return Instruction{Kind: KindArtwork, Artwork: artwork}, nil
}

func decodeStateToken(payload []byte) (Instruction, error) {
	token := strings.ToLower(strings.TrimSpace(string(payload)))
	switch Status(token) {
	case StatusStopped, StatusLoading, StatusPlaying, StatusPaused:
		return Instruction{Kind: KindTransition, State: Status(token)}, nil
	}
	return Instruction{}, fmt.Errorf("unrecognised play state token %q", token)
}

func transitionRule(state Status) decodeRule {
	return func(_ []byte) (Instruction, error) {
		return Instruction{Kind: KindTransition, State: state}, nil
	}
}
