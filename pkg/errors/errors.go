package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// ErrLockNotAcquired 排期锁被其他请求持有
var ErrLockNotAcquired = errors.New("排期正在进行中，请稍后重试")
