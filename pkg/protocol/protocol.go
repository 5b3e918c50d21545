package protocol

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	ErrMalformedMessage   = errors.New("malformed message")
	ErrUnknownMessageType = errors.New("unknown message type")
	ErrNilPayload         = errors.New("nil payload")
)

type MessageType string

// Payload is any message body that knows its own wire tag.
type Payload interface {
	MessageType() MessageType
}

// Envelope is the JSON frame exchanged with the server:
//
//	{"type": "<tag>", "payload": {...}}
type Envelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Factory func() Payload

// Registry maps a wire tag to the factory of its payload.
type Registry map[MessageType]Factory

func (r Registry) Register(messageType MessageType, factory Factory) {
	r[messageType] = factory
}

func (r Registry) Has(messageType MessageType) bool {
	_, ok := r[messageType]
	return ok
}

type Protocol struct {
	registry Registry
}

func NewProtocol(registry Registry) *Protocol {
	if registry == nil {
		registry = Registry{}
	}
	return &Protocol{
		registry: registry,
	}
}

func (p *Protocol) Registry() Registry {
	return p.registry
}

// Encode wraps the payload into an envelope tagged with the payload's own type.
func (p *Protocol) Encode(payload Payload) (*Envelope, error) {
	if payload == nil {
		return nil, ErrNilPayload
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal payload")
	}

	return &Envelope{
		Type:    payload.MessageType(),
		Payload: data,
	}, nil
}

// Marshal encodes the payload and returns the frame ready to be sent.
func (p *Protocol) Marshal(payload Payload) ([]byte, error) {
	envelope, err := p.Encode(payload)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal envelope")
	}

	return data, nil
}

// Decode parses a raw frame. It either returns a complete payload or an error
// wrapping ErrMalformedMessage or ErrUnknownMessageType.
func (p *Protocol) Decode(raw []byte) (Payload, error) {
	var fields map[string]json.RawMessage
	err := json.Unmarshal(raw, &fields)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedMessage, err.Error())
	}
	if fields == nil {
		return nil, errors.Wrap(ErrMalformedMessage, "message is not an object")
	}

	typeField, ok := fields["type"]
	if !ok {
		return nil, errors.Wrap(ErrMalformedMessage, "missing type")
	}

	var messageType MessageType
	err = json.Unmarshal(typeField, &messageType)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedMessage, "type is not a string")
	}
	if messageType == "" {
		return nil, errors.Wrap(ErrMalformedMessage, "empty type")
	}

	return p.DecodeEnvelope(&Envelope{
		Type:    messageType,
		Payload: fields["payload"],
	})
}

func (p *Protocol) DecodeEnvelope(envelope *Envelope) (Payload, error) {
	if envelope == nil || envelope.Type == "" {
		return nil, errors.Wrap(ErrMalformedMessage, "empty envelope")
	}

	if !p.registry.Has(envelope.Type) {
		return nil, errors.Wrapf(ErrUnknownMessageType, "type %q", envelope.Type)
	}

	payload := p.registry[envelope.Type]()
	if isEmptyPayload(envelope.Payload) {
		return payload, nil
	}

	err := json.Unmarshal(envelope.Payload, payload)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedMessage, "invalid %s payload: %s", envelope.Type, err)
	}

	return payload, nil
}

func isEmptyPayload(data json.RawMessage) bool {
	data = bytes.TrimSpace(data)
	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}
