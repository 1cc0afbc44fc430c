package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mdnsexplorer/mdnsexplorer/internal/api/models"
	"github.com/mdnsexplorer/mdnsexplorer/internal/helpers"
	"github.com/mdnsexplorer/mdnsexplorer/internal/mdns"
	"github.com/mdnsexplorer/mdnsexplorer/internal/store"
)

const (
	defaultListLimit = 100
	maxListLimit     = 5000
)

// ListMessages godoc
// @Summary List captured messages
// @Description Returns the most recently captured mDNS messages, newest first
// @Tags messages
// @Produce json
// @Param limit query int false "maximum number of messages to return"
// @Success 200 {object} models.MessageListResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /messages [get]
func (h *Handler) ListMessages(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = helpers.ClampInt(v, 1, maxListLimit)
		}
	}

	msgs, err := h.store.List(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	summaries := make([]models.MessageSummary, 0, len(msgs))
	for _, m := range msgs {
		summaries = append(summaries, toSummary(m))
	}

	c.JSON(http.StatusOK, models.MessageListResponse{Messages: summaries, Count: len(summaries)})
}

// GetMessage godoc
// @Summary Get a captured message
// @Description Returns the fully decoded view of a single captured message
// @Tags messages
// @Produce json
// @Param id path int true "message ID"
// @Success 200 {object} models.MessageDetail
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /messages/{id} [get]
func (h *Handler) GetMessage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid message id"})
		return
	}

	m, err := h.store.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "message not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, toDetail(m))
}

func toSummary(m store.Message) models.MessageSummary {
	return models.MessageSummary{
		ID:           m.ID,
		CapturedAt:   m.CapturedAt,
		SourceAddr:   m.SourceAddr,
		DestAddr:     m.DestAddr,
		Interface:    m.Interface,
		NumQuestions: m.NumQuestions,
		NumAnswers:   m.NumAnswers,
		PrimaryName:  m.PrimaryName,
		DecodeError:  m.DecodeError,
	}
}

func toDetail(m store.Message) models.MessageDetail {
	detail := models.MessageDetail{
		MessageSummary: toSummary(m),
		RawBase64:      base64.StdEncoding.EncodeToString(m.Raw),
	}

	decoded, err := m.Decoded()
	if err != nil {
		return detail
	}

	detail.HeaderID = decoded.Header.ID
	detail.Flags = decoded.Header.Flags

	detail.Questions = make([]models.DecodedQuestion, 0, len(decoded.Questions))
	for _, q := range decoded.Questions {
		detail.Questions = append(detail.Questions, models.DecodedQuestion{
			Name:  q.Name,
			Type:  q.QType.String(),
			Class: q.QClass.String(),
		})
	}

	detail.Answers = make([]models.DecodedAnswer, 0, len(decoded.Answers))
	for _, a := range decoded.Answers {
		detail.Answers = append(detail.Answers, toDecodedAnswer(a))
	}

	return detail
}

func toDecodedAnswer(a mdns.Answer) models.DecodedAnswer {
	out := models.DecodedAnswer{
		Name:     a.Name,
		Type:     a.AType.String(),
		Class:    a.AClass.String(),
		TTL:      a.TTL,
		RDLength: a.RDLength,
	}

	switch rdata := a.RData.(type) {
	case mdns.ARData:
		out.Address = rdata.IP().String()
	case mdns.AAAARData:
		out.Address = rdata.IP().String()
	case mdns.PTRData:
		out.Target = rdata.Name
	case mdns.CNAMEData:
		out.Target = rdata.Name
	case mdns.SRVData:
		out.Priority = rdata.Priority
		out.Weight = rdata.Weight
		out.Port = rdata.Port
		out.Target = rdata.Target
	case mdns.TXTData:
		out.TXT = rdata.Raw
	case mdns.OtherData:
		out.Raw = rdata.Raw
	}

	return out
}
