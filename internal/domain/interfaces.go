package domain

// Connection is one live bidirectional channel to a client. The
// transport owns the underlying socket; the relay only addresses it by
// ID and pushes outbound events through Send.
type Connection interface {
	ID() string
	Send(msg *Outbound) error
	Close() error
}

// TokenMinter issues room access tokens for the external media service.
// The relay core never inspects tokens.
type TokenMinter interface {
	Mint(room, identity string) (string, error)
}
