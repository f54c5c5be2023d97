package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/perfpulse/perfpulse-go/internal/model"
	"github.com/perfpulse/perfpulse-go/internal/service"
)

// RewardHandler handles HTTP requests for the reward catalog.
type RewardHandler struct {
	service *service.RewardService
}

// NewRewardHandler creates a new RewardHandler.
func NewRewardHandler(svc *service.RewardService) *RewardHandler {
	return &RewardHandler{service: svc}
}

// HandleList handles GET /api/reward requests.
func (h *RewardHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 10)

	result, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	writeOK(w, result, "查询成功")
}

// HandleGet handles GET /api/reward/{rewardId} requests.
func (h *RewardHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	reward, err := h.service.Get(r.Context(), chi.URLParam(r, "rewardId"))
	if err != nil {
		if errors.Is(err, service.ErrRewardNotFound) {
			writeFail(w, http.StatusNotFound, "找不到奖励")
			return
		}
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	writeOK(w, reward, "查询成功")
}

// HandleCreate handles POST /api/reward requests.
func (h *RewardHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRewardRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	reward, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	writeOK(w, reward, "创建成功")
}

// HandleRedeem handles POST /api/reward/{rewardId}/redeem requests.
func (h *RewardHandler) HandleRedeem(w http.ResponseWriter, r *http.Request) {
	var req model.RedeemRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	redemption, err := h.service.Redeem(r.Context(), chi.URLParam(r, "rewardId"), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeFail(w, http.StatusNotFound, "找不到用户")
		case errors.Is(err, service.ErrRewardNotFound):
			writeFail(w, http.StatusNotFound, "找不到奖励")
		case errors.Is(err, service.ErrRewardUnavailable):
			writeFail(w, http.StatusBadRequest, "该奖励不可用")
		case errors.Is(err, service.ErrInsufficientPoints):
			writeFail(w, http.StatusBadRequest, "积分不足")
		default:
			writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		}
		return
	}

	writeOK(w, redemption, "奖励兑换成功")
}

// HandleRedemptions handles GET /api/reward/redemptions requests.
func (h *RewardHandler) HandleRedemptions(w http.ResponseWriter, r *http.Request) {
	redemptions, err := h.service.Redemptions(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	writeOK(w, redemptions, "查询成功")
}

// HandleLike handles POST /api/reward/{rewardId}/like requests.
func (h *RewardHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	likes, err := h.service.Like(r.Context(), chi.URLParam(r, "rewardId"))
	if err != nil {
		if errors.Is(err, service.ErrRewardNotFound) {
			writeFail(w, http.StatusNotFound, "找不到奖励")
			return
		}
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	writeOK(w, map[string]int{"likes": likes}, "点赞成功")
}

// HandleSuggest handles POST /api/reward/{rewardId}/suggest requests.
func (h *RewardHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	var req model.SuggestRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	rewardID := chi.URLParam(r, "rewardId")
	if rewardID == "new" {
		rewardID = ""
	}

	id, err := h.service.Suggest(r.Context(), rewardID, req)
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	writeOK(w, map[string]string{"suggestion_id": id}, "建议已提交，感谢您的反馈！")
}

// HandleSuggestNew handles POST /api/reward/suggest-new requests.
func (h *RewardHandler) HandleSuggestNew(w http.ResponseWriter, r *http.Request) {
	var req model.SuggestRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	id, err := h.service.Suggest(r.Context(), "", req)
	if err != nil {
		writeFail(w, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	writeOK(w, map[string]string{"suggestion_id": id}, "新奖励建议已提交，感谢反馈！")
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
