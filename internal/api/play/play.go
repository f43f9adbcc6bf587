package play

import (
	"errors"
	"net/http"
	"strconv"

	dto "tarot_slots/internal/api/dto/play"
	"tarot_slots/internal/converter"
	"tarot_slots/internal/repository"
	"tarot_slots/internal/service"
	"tarot_slots/internal/service/feature"
	"tarot_slots/internal/service/grid"
	playServ "tarot_slots/internal/service/play"
	"tarot_slots/internal/service/spin"
	"tarot_slots/pkg/req"
	"tarot_slots/pkg/resp"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv   service.PlayService
	Logger *zap.Logger
}

type Handler struct {
	serv   service.PlayService
	logger *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{serv: deps.Serv, logger: logger}
}

// Open открывает сессию и возвращает токен для остальных запросов
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.OpenSessionRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	sessReq, err := converter.ToSessionRequest(payload)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := h.serv.Open(r.Context(), sessReq)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToSessionResponse(*sess))
}

func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.serv.Close(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.serv.State(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(state))
}

func (h *Handler) SetBet(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.BetRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	bet, err := converter.ToBet(payload)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.serv.SetBet(r.Context(), bet)
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(state))
}

func (h *Handler) SetSeed(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SeedRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.serv.SetSeed(r.Context(), payload.Seed)
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(state))
}

func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	result, err := h.serv.Spin(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(*result))
}

// ForceSpin спин с заданными колонками таро (отладка и тесты бонусов)
func (h *Handler) ForceSpin(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.ForceSpinRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	ft, columns, err := converter.ToForceSpin(payload)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.serv.ForceSpin(r.Context(), ft, columns)
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(*result))
}

func (h *Handler) LoversOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := h.serv.LoversOffer(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToLoversOfferResponse(*offer))
}

func (h *Handler) LoversSelect(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SelectRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	round, err := h.serv.LoversSelect(r.Context(), payload.Index)
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToFeatureRoundResponse(*round))
}

// PlayRound раунд жрицы или смерти
func (h *Handler) PlayRound(w http.ResponseWriter, r *http.Request) {
	round, err := h.serv.PlayRound(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToFeatureRoundResponse(*round))
}

// History последние игры сессии, ?limit=N
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	var limit uint64
	if raw := r.URL.Query().Get("limit"); len(raw) > 0 {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			resp.WriteError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	plays, err := h.serv.History(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToHistoryResponse(plays))
}

func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.serv.Stats()))
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	resp.WriteError(w, status, err.Error())
}

// StatusFor HTTP статус для ошибки сервиса
func StatusFor(err error) int {
	switch {
	case errors.Is(err, playServ.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, spin.ErrSpinInProgress),
		errors.Is(err, spin.ErrNoActiveFeature),
		errors.Is(err, spin.ErrFeatureMismatch),
		errors.Is(err, feature.ErrNoPendingOffer),
		errors.Is(err, feature.ErrFeatureFinished):
		return http.StatusConflict
	case errors.Is(err, spin.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, spin.ErrInvalidBet),
		errors.Is(err, playServ.ErrInvalidOptions),
		errors.Is(err, grid.ErrInvalidColumns),
		errors.Is(err, feature.ErrSelectionOutOfRange):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
