package scheduler

import "regexp"

// 校验文案对外可见，保持与前端一致
const (
	ErrMsgCodeRequired       = "Course code is required"
	ErrMsgCodeFormat         = "Invalid course code format (e.g., CPSC 110)"
	ErrMsgNameRequired       = "Course name is required"
	ErrMsgStudentsRequired   = "Student count is required"
	ErrMsgStudentsPositive   = "Student count must be positive"
	ErrMsgDurationOutOfRange = "Exam duration must be between 30 and 360 minutes"
)

const (
	MinExamDuration     = 30
	MaxExamDuration     = 360
	DefaultExamDuration = 150
)

// 2-4 位大写字母 + 空白 + 3 位数字 + 可选大写字母，如 CPSC 110、MATH 200A
// 空白沿用前端 JS 的 \s 范围：ASCII 空白、\v、Unicode Zs 类、行/段分隔符与 BOM
var courseCodePattern = regexp.MustCompile(`^[A-Z]{2,4}[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]\d{3}[A-Z]?$`)

// CourseInput 待校验的课程字段，nil 表示未提供
type CourseInput struct {
	Code         *string
	Name         *string
	StudentCount *int
	Duration     *int
}

// ValidateCourse 校验课程字段，返回全部错误（不短路）
//
// StudentCount 为 0 时报 "required" 而不是 "must be positive"；
// Duration 为 nil 或 0 视为未提供，由下游取默认值。
func ValidateCourse(in CourseInput) []string {
	errs := make([]string, 0)

	if in.Code == nil || *in.Code == "" {
		errs = append(errs, ErrMsgCodeRequired)
	} else if !courseCodePattern.MatchString(*in.Code) {
		errs = append(errs, ErrMsgCodeFormat)
	}

	if in.Name == nil || *in.Name == "" {
		errs = append(errs, ErrMsgNameRequired)
	}

	if in.StudentCount == nil || *in.StudentCount == 0 {
		errs = append(errs, ErrMsgStudentsRequired)
	} else if *in.StudentCount < 1 {
		errs = append(errs, ErrMsgStudentsPositive)
	}

	if in.Duration != nil && *in.Duration != 0 &&
		(*in.Duration < MinExamDuration || *in.Duration > MaxExamDuration) {
		errs = append(errs, ErrMsgDurationOutOfRange)
	}

	return errs
}
