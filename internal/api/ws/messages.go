package ws

import (
	"encoding/json"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

type MessageType string

const (
	MsgTypeSession      MessageType = "session"
	MsgTypeSetBet       MessageType = "set_bet"
	MsgTypeSetSeed      MessageType = "set_seed"
	MsgTypeSpin         MessageType = "spin"
	MsgTypeForce        MessageType = "force"
	MsgTypeLoversOffer  MessageType = "lovers_offer"
	MsgTypeLoversSelect MessageType = "lovers_select"
	MsgTypeRound        MessageType = "round"
	MsgTypeError        MessageType = "error"
)

// Message конверт websocket сообщения. Ответ приходит с тем же типом или с error.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ErrorPayload тело сообщения error
type ErrorPayload struct {
	Request MessageType `json:"request"`
	Status  int         `json:"status"`
	Message string      `json:"message"`
}

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

func NewMessage(msgType MessageType, payload any) (Message, error) {
	if payload == nil {
		return Message{Type: msgType}, nil
	}
	data, err := codec.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return Message{Type: msgType, Payload: data}, nil
}

// Decode разбирает payload в v, пустой payload оставляет v как есть
func (m *Message) Decode(v any) error {
	if len(m.Payload) == 0 {
		return nil
	}
	if err := codec.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("invalid %s payload: %w", m.Type, err)
	}
	return nil
}
