package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	dto "tarot_slots/internal/api/dto/play"
	playAPI "tarot_slots/internal/api/play"
	"tarot_slots/internal/converter"
	"tarot_slots/internal/service"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"
)

var errBadRequest = errors.New("bad request")

type HandlerDeps struct {
	Serv           service.PlayService
	Logger         *zap.Logger
	OriginPatterns []string
}

type Handler struct {
	serv    service.PlayService
	logger  *zap.Logger
	origins []string
}

func NewHandler(deps HandlerDeps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{serv: deps.Serv, logger: logger, origins: deps.OriginPatterns}
}

// Serve websocket сессии. Сессия уже проверена middleware.Auth по ?token=.
// Сообщения обрабатываются по одному, в порядке поступления.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.origins})
	if err != nil {
		h.logger.Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	for {
		var msg Message
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				h.logger.Debug("websocket read failed", zap.Error(err))
			}
			return
		}

		reply := h.dispatch(ctx, msg)
		if err := wsjson.Write(ctx, conn, reply); err != nil {
			h.logger.Debug("websocket write failed", zap.Error(err))
			return
		}
	}
}

func (h *Handler) dispatch(ctx context.Context, msg Message) Message {
	payload, err := h.handle(ctx, &msg)
	if err != nil {
		status := playAPI.StatusFor(err)
		if errors.Is(err, errBadRequest) {
			status = http.StatusBadRequest
		}
		out, _ := NewMessage(MsgTypeError, ErrorPayload{Request: msg.Type, Status: status, Message: err.Error()})
		return out
	}

	out, err := NewMessage(msg.Type, payload)
	if err != nil {
		h.logger.Error("websocket encode failed", zap.Error(err))
		out, _ = NewMessage(MsgTypeError, ErrorPayload{Request: msg.Type, Status: http.StatusInternalServerError, Message: err.Error()})
	}
	return out
}

func (h *Handler) handle(ctx context.Context, msg *Message) (any, error) {
	switch msg.Type {
	case MsgTypeSession:
		state, err := h.serv.State(ctx)
		if err != nil {
			return nil, err
		}
		return converter.ToStateResponse(state), nil

	case MsgTypeSetBet:
		var req dto.BetRequest
		if err := msg.Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		bet, err := converter.ToBet(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		state, err := h.serv.SetBet(ctx, bet)
		if err != nil {
			return nil, err
		}
		return converter.ToStateResponse(state), nil

	case MsgTypeSetSeed:
		var req dto.SeedRequest
		if err := msg.Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		state, err := h.serv.SetSeed(ctx, req.Seed)
		if err != nil {
			return nil, err
		}
		return converter.ToStateResponse(state), nil

	case MsgTypeSpin:
		res, err := h.serv.Spin(ctx)
		if err != nil {
			return nil, err
		}
		return converter.ToSpinResponse(*res), nil

	case MsgTypeForce:
		var req dto.ForceSpinRequest
		if err := msg.Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		ft, columns, err := converter.ToForceSpin(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		res, err := h.serv.ForceSpin(ctx, ft, columns)
		if err != nil {
			return nil, err
		}
		return converter.ToSpinResponse(*res), nil

	case MsgTypeLoversOffer:
		offer, err := h.serv.LoversOffer(ctx)
		if err != nil {
			return nil, err
		}
		return converter.ToLoversOfferResponse(*offer), nil

	case MsgTypeLoversSelect:
		var req dto.SelectRequest
		if err := msg.Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		round, err := h.serv.LoversSelect(ctx, req.Index)
		if err != nil {
			return nil, err
		}
		return converter.ToFeatureRoundResponse(*round), nil

	case MsgTypeRound:
		round, err := h.serv.PlayRound(ctx)
		if err != nil {
			return nil, err
		}
		return converter.ToFeatureRoundResponse(*round), nil
	}
	return nil, fmt.Errorf("%w: unknown message type %q", errBadRequest, msg.Type)
}
