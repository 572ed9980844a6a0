package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"

	"github.com/alr63095/ClubConnect/internal/domain"
	"github.com/alr63095/ClubConnect/internal/handler/dto"
	"github.com/alr63095/ClubConnect/internal/service"
)

const dateLayout = "2006-01-02"

type ClubSvc interface {
	Create(ctx context.Context, input domain.CreateClubInput) (*domain.Club, error)
	Get(ctx context.Context, id string) (*domain.Club, error)
	List(ctx context.Context) ([]*domain.Club, error)
	Delete(ctx context.Context, id string) error
}

type CourtSvc interface {
	ListByClub(ctx context.Context, clubID string) ([]*domain.Court, error)
	Upsert(ctx context.Context, input domain.UpsertCourtInput) (*domain.Court, error)
	Delete(ctx context.Context, id string) error
}

type AvailabilitySvc interface {
	ClubAvailability(ctx context.Context, clubID, sport string, date time.Time) ([]domain.CourtAvailability, error)
	GlobalAvailability(ctx context.Context, sport string, date time.Time) ([]domain.ClubAvailability, error)
}

type BookingSvc interface {
	Create(ctx context.Context, userID, courtID string, date time.Time, slotTimes []string) (*domain.Booking, error)
	RequestCancellation(ctx context.Context, bookingID string) (*service.CancellationResult, error)
	ApproveCancellation(ctx context.Context, bookingID string) error
	RejectCancellation(ctx context.Context, bookingID string) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error)
	ListByClub(ctx context.Context, clubID string) ([]*domain.Booking, error)
}

type ForumSvc interface {
	Publish(ctx context.Context, bookingID, ownerID string, playersNeeded, skillLevel int) (*domain.Booking, error)
	RequestToJoin(ctx context.Context, bookingID, userID string) (*domain.Booking, error)
	AcceptJoin(ctx context.Context, bookingID, ownerID, userID string) (*domain.Booking, error)
	RejectJoin(ctx context.Context, bookingID, ownerID, userID string) (*domain.Booking, error)
	ListOpenGames(ctx context.Context, filters service.OpenGameFilters) ([]domain.OpenGame, error)
}

type UserSvc interface {
	Register(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type Handler struct {
	clubService         ClubSvc
	courtService        CourtSvc
	availabilityService AvailabilitySvc
	bookingService      BookingSvc
	forumService        ForumSvc
	userService         UserSvc
}

func NewHandler(
	clubService ClubSvc,
	courtService CourtSvc,
	availabilityService AvailabilitySvc,
	bookingService BookingSvc,
	forumService ForumSvc,
	userService UserSvc,
) *Handler {
	return &Handler{
		clubService:         clubService,
		courtService:        courtService,
		availabilityService: availabilityService,
		bookingService:      bookingService,
		forumService:        forumService,
		userService:         userService,
	}
}

// Clubs

func (h *Handler) CreateClub(c *ginext.Context) {
	var req dto.CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	club, err := h.clubService.Create(c.Request.Context(), domain.CreateClubInput{
		Name:   req.Name,
		Sports: req.Sports,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToClubResponse(club))
}

func (h *Handler) GetClub(c *ginext.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	club, err := h.clubService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClubResponse(club))
}

func (h *Handler) ListClubs(c *ginext.Context) {
	clubs, err := h.clubService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.ClubResponse, 0, len(clubs))
	for _, club := range clubs {
		resp = append(resp, dto.ToClubResponse(club))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeleteClub(c *ginext.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.clubService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Courts

func (h *Handler) ListClubCourts(c *ginext.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	courts, err := h.courtService.ListByClub(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.CourtResponse, 0, len(courts))
	for _, court := range courts {
		resp = append(resp, dto.ToCourtResponse(court))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateCourt(c *ginext.Context) {
	var req dto.UpsertCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	court, err := h.courtService.Upsert(c.Request.Context(), req.ToInput(""))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCourtResponse(court))
}

func (h *Handler) UpdateCourt(c *ginext.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpsertCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	court, err := h.courtService.Upsert(c.Request.Context(), req.ToInput(id))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCourtResponse(court))
}

func (h *Handler) DeleteCourt(c *ginext.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.courtService.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Availability

func (h *Handler) GetAvailability(c *ginext.Context) {
	clubID := c.Query("club_id")
	if _, err := uuid.Parse(clubID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid club_id"})
		return
	}
	sport := c.Query("sport")
	if sport == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "sport is required"})
		return
	}
	date, ok := h.queryDate(c)
	if !ok {
		return
	}

	availability, err := h.availabilityService.ClubAvailability(c.Request.Context(), clubID, sport, date)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.CourtAvailabilityResponse, 0, len(availability))
	for _, a := range availability {
		resp = append(resp, dto.ToCourtAvailabilityResponse(a))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetGlobalAvailability(c *ginext.Context) {
	sport := c.Query("sport")
	if sport == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "sport is required"})
		return
	}
	date, ok := h.queryDate(c)
	if !ok {
		return
	}

	availability, err := h.availabilityService.GlobalAvailability(c.Request.Context(), sport, date)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.ClubAvailabilityResponse, 0, len(availability))
	for _, a := range availability {
		resp = append(resp, dto.ToClubAvailabilityResponse(a))
	}

	c.JSON(http.StatusOK, resp)
}

// Bookings

func (h *Handler) CreateBooking(c *ginext.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), req.UserID, req.CourtID, date, req.SlotTimes)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *Handler) RequestCancellation(c *ginext.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.bookingService.RequestCancellation(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCancellationResponse(result))
}

func (h *Handler) ApproveCancellation(c *ginext.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.bookingService.ApproveCancellation(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ginext.H{"status": "cancelled"})
}

func (h *Handler) RejectCancellation(c *ginext.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.bookingService.RejectCancellation(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ginext.H{"status": "confirmed"})
}

func (h *Handler) GetUserBookings(c *ginext.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListByUser(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *Handler) GetClubBookings(c *ginext.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListByClub(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

// Forum

func (h *Handler) PublishToForum(c *ginext.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req dto.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	booking, err := h.forumService.Publish(c.Request.Context(), id, req.OwnerID, req.PlayersNeeded, req.SkillLevel)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) RequestToJoin(c *ginext.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req dto.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	booking, err := h.forumService.RequestToJoin(c.Request.Context(), id, req.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) AcceptJoin(c *ginext.Context) {
	h.decideJoin(c, h.forumService.AcceptJoin)
}

func (h *Handler) RejectJoin(c *ginext.Context) {
	h.decideJoin(c, h.forumService.RejectJoin)
}

func (h *Handler) decideJoin(c *ginext.Context, decide func(ctx context.Context, bookingID, ownerID, userID string) (*domain.Booking, error)) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req dto.JoinDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	booking, err := decide(c.Request.Context(), id, req.OwnerID, req.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) ListOpenGames(c *ginext.Context) {
	var filters service.OpenGameFilters
	filters.Sport = c.Query("sport")

	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "invalid date format, expected YYYY-MM-DD",
			})
			return
		}
		filters.Date = &date
	}

	if raw := c.Query("skill_level"); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil || level < 1 || level > 5 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid skill_level"})
			return
		}
		filters.SkillLevel = level
	}

	games, err := h.forumService.ListOpenGames(c.Request.Context(), filters)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.OpenGameResponse, 0, len(games))
	for _, g := range games {
		resp = append(resp, dto.ToOpenGameResponse(g))
	}

	c.JSON(http.StatusOK, resp)
}

// Users

func (h *Handler) CreateUser(c *ginext.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), domain.CreateUserInput{
		Name:           req.Name,
		Email:          req.Email,
		Role:           domain.UserRole(req.Role),
		ClubIDs:        req.ClubIDs,
		TelegramChatID: req.TelegramChatID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *Handler) ListUsers(c *ginext.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, dto.ToUserResponse(u))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) pathID(c *ginext.Context, name string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + name})
		return "", false
	}
	return id, true
}

func (h *Handler) queryDate(c *ginext.Context) (time.Time, bool) {
	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "invalid date format, expected YYYY-MM-DD",
		})
		return time.Time{}, false
	}
	return date, true
}

func toBookingResponses(bookings []*domain.Booking) []dto.BookingResponse {
	resp := make([]dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, dto.ToBookingResponse(b))
	}
	return resp
}

func (h *Handler) handleError(c *ginext.Context, err error) {
	c.Set("error", err.Error())

	switch {
	case errors.Is(err, domain.ErrClubNotFound),
		errors.Is(err, domain.ErrCourtNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrSlotTaken),
		errors.Is(err, domain.ErrGameFull),
		errors.Is(err, domain.ErrAlreadyJoined),
		errors.Is(err, domain.ErrAlreadyRequested),
		errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrNoJoinRequest):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
