package trip

type Kind string

const (
	KindBus    Kind = "bus"
	KindFlight Kind = "flight"
	KindEvent  Kind = "event"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindBus, KindFlight, KindEvent:
		return true
	default:
		return false
	}
}

func NewKind(s string) (Kind, error) {
	kind := Kind(s)
	if !kind.IsValid() {
		return "", ErrInvalidKind
	}
	return kind, nil
}
