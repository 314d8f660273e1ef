package handlers

import (
	"fmt"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// Сообщения, общие для нескольких обработчиков
const (
	// CodeDailyMeetingLimit код ошибки лимита встреч организатора в день
	CodeDailyMeetingLimit = "DAILY_MEETING_LIMIT_EXCEEDED"

	// MsgBackendUnavailable текст при недоступности бэкенда переговорных
	MsgBackendUnavailable = "không thể kết nối tới máy chủ đặt phòng, vui lòng thử lại"

	// MsgInvalidRequestBody текст при некорректном теле запроса
	MsgInvalidRequestBody = "dữ liệu yêu cầu không hợp lệ"
)

// MsgDailyMeetingLimit текст для пользователя при превышении лимита встреч в день
var MsgDailyMeetingLimit = fmt.Sprintf(
	"Bạn đã vượt quá giới hạn %d cuộc họp mỗi ngày. Vui lòng chọn ngày khác hoặc giảm số lần lặp lại.",
	domain.MaxMeetingsPerDay,
)
