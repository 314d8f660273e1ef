package meetingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/session"
	"github.com/m04kA/SMC-MeetingBooking/pkg/types"
)

// Названия операций для логов и метрик
const (
	opInitMeeting       = "init_meeting"
	opCreateMeetingRoom = "create_meeting_room"
	opFilterAvailable   = "filter_available_physical_rooms"
	opAssignPhysical    = "assign_physical_room"
	opUpdateMeeting     = "update_meeting"
	opCancelMeeting     = "cancel_meeting"
	opAvailableEquip    = "available_equipment"
)

// HeaderIdempotencyKey заголовок, по которому бэкенд распознает повтор одного и того же шага
const HeaderIdempotencyKey = "Idempotency-Key"

// maxErrorBodySize ограничение на чтение тела ошибки
const maxErrorBodySize = 64 << 10

// Client клиент для работы с REST бэкендом переговорных
// Токен берется из сессии в контексте запроса; при 401 сессия очищается
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    MetricsRecorder
	log        Logger
}

// NewClient создает новый экземпляр клиента бэкенда
func NewClient(baseURL string, timeout time.Duration, metrics MetricsRecorder, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		log:     log,
	}
}

// InitMeeting создает черновик встречи и возвращает его идентификатор
func (c *Client) InitMeeting(ctx context.Context, req *InitMeetingRequest) (int64, error) {
	var resp InitMeetingResponse
	if err := c.do(ctx, opInitMeeting, http.MethodPost, "/meetings/init", nil, req, &resp, ""); err != nil {
		return 0, err
	}

	id := resp.Identifier()
	if id <= 0 {
		return 0, fmt.Errorf("%w: init meeting returned no identifier", ErrInvalidResponse)
	}
	return id, nil
}

// CreateMeetingRoom создает комнату встречи; idempotencyKey передается при повторах
func (c *Client) CreateMeetingRoom(ctx context.Context, req *CreateMeetingRoomRequest, idempotencyKey string) (*MeetingRoom, error) {
	var room MeetingRoom
	if err := c.do(ctx, opCreateMeetingRoom, http.MethodPost, "/meeting-rooms", nil, req, &room, idempotencyKey); err != nil {
		return nil, err
	}

	if room.Identifier() <= 0 {
		return nil, fmt.Errorf("%w: create meeting room returned no identifier", ErrInvalidResponse)
	}
	return &room, nil
}

// FilterAvailablePhysicalRooms запрашивает свободные физические комнаты на окно времени и вместимость
// Пересечения с существующими бронированиями вычисляет бэкенд
func (c *Client) FilterAvailablePhysicalRooms(ctx context.Context, req *FilterAvailableRequest) ([]PhysicalRoom, error) {
	rooms := make([]PhysicalRoom, 0)
	if err := c.do(ctx, opFilterAvailable, http.MethodPost, "/physical-rooms/filter-available", nil, req, &rooms, ""); err != nil {
		return nil, err
	}
	return rooms, nil
}

// AssignPhysicalRoom привязывает физическую комнату к комнате встречи
func (c *Client) AssignPhysicalRoom(ctx context.Context, req *AssignPhysicalRoomRequest, idempotencyKey string) error {
	return c.do(ctx, opAssignPhysical, http.MethodPost, "/physical-rooms/assign", nil, req, nil, idempotencyKey)
}

// UpdateMeeting обновляет встречу (в том числе поля повторения)
func (c *Client) UpdateMeeting(ctx context.Context, meetingID int64, req *UpdateMeetingRequest) (*Meeting, error) {
	var meeting Meeting
	path := fmt.Sprintf("/meetings/%d", meetingID)
	if err := c.do(ctx, opUpdateMeeting, http.MethodPut, path, nil, req, &meeting, ""); err != nil {
		return nil, err
	}
	return &meeting, nil
}

// CancelMeeting отменяет встречу с указанием причины
func (c *Client) CancelMeeting(ctx context.Context, meetingID int64, reason string) error {
	path := fmt.Sprintf("/meetings/%d/cancel", meetingID)
	return c.do(ctx, opCancelMeeting, http.MethodPost, path, nil, &CancelMeetingRequest{Reason: reason}, nil, "")
}

// GetAvailableEquipment получает остатки оборудования на окно времени
func (c *Client) GetAvailableEquipment(ctx context.Context, start, end types.LocalDateTime) ([]EquipmentAvailability, error) {
	query := url.Values{}
	query.Set("startTime", start.String())
	query.Set("endTime", end.String())

	items := make([]EquipmentAvailability, 0)
	if err := c.do(ctx, opAvailableEquip, http.MethodGet, "/equipment/available", query, nil, &items, ""); err != nil {
		return nil, err
	}
	return items, nil
}

// do выполняет запрос к бэкенду: авторизация из сессии, обработка статус-кодов, метрики
func (c *Client) do(
	ctx context.Context,
	op, method, path string,
	query url.Values,
	body, out interface{},
	idempotencyKey string,
) (err error) {
	started := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.ObserveBackendCall(op, outcome(err), time.Since(started))
		}
	}()

	sess, ok := session.FromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: no session in context", ErrUnauthorized)
	}
	token, ok := sess.Token()
	if !ok {
		return fmt.Errorf("%w: session cleared", ErrUnauthorized)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if idempotencyKey != "" {
		req.Header.Set(HeaderIdempotencyKey, idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("%s %s failed: %v", method, path, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusUnauthorized:
		// Глобальная обработка 401: сессия больше недействительна
		sess.Clear()
		c.log.Warn("%s %s: backend returned 401, session cleared for user=%d", method, path, sess.UserID())
		return ErrUnauthorized
	default:
		apiErr := readAPIError(resp)
		c.log.Warn("%s %s: backend error: %v", method, path, apiErr)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// readAPIError разбирает тело ошибки бэкенда
// Бэкенд отдает {"code","message"} или {"error"}, иногда просто текст
func readAPIError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	apiErr := &APIError{Status: resp.StatusCode}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		apiErr.kind = ErrNotFound
	case resp.StatusCode >= 500:
		apiErr.kind = ErrUnavailable
	default:
		apiErr.kind = ErrRejected
	}

	var body ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}

	return apiErr
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	switch {
	case IsRetryable(err):
		return "unavailable"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	default:
		return "error"
	}
}
