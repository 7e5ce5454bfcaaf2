package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/akiblasco/SchedulerUBC/pkg/errors"
	"github.com/akiblasco/SchedulerUBC/pkg/response"
)

// ── 业务错误码 ──
//
//	10xxx 通用    11xxx 认证    20xxx 课程    21xxx 考场
//	22xxx 冲突    23xxx 导出    24xxx 上传
const (
	codeInvalidParams = 10001
	codeSchedulerBusy = 10006

	codeInvalidCredentials = 11001
	codeUserNotFound       = 11002

	codeCourseInvalid  = 20001
	codeCourseNotFound = 20002

	codeRoomNotFound        = 21001
	codeRoomVersionConflict = 21002

	codeConflictNotFound = 22001

	codeExportFormat = 23001

	codeUploadDisabled = 24001
	codeUploadFileType = 24002
	codeUploadNoFile   = 24003
)

// handleLockError 排期锁竞争的统一处理，已处理时返回 true
func handleLockError(c *gin.Context, err error) bool {
	if errors.Is(err, pkgerrors.ErrLockNotAcquired) {
		response.ServiceUnavailable(c, codeSchedulerBusy, "排期正在进行中，请稍后重试")
		return true
	}
	return false
}

func badParams(c *gin.Context) {
	response.Error(c, http.StatusBadRequest, codeInvalidParams, "参数校验失败")
}
