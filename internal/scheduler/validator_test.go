package scheduler

import (
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestValidateCourse_Valid(t *testing.T) {
	errs := ValidateCourse(CourseInput{
		Code:         strPtr("CPSC 110"),
		Name:         strPtr("Computation, Programs, and Programming"),
		StudentCount: intPtr(200),
	})
	if len(errs) != 0 {
		t.Errorf("期望无错误，实际: %v", errs)
	}
}

func TestValidateCourse_EmptyInput(t *testing.T) {
	errs := ValidateCourse(CourseInput{})

	want := []string{ErrMsgCodeRequired, ErrMsgNameRequired, ErrMsgStudentsRequired}
	if !reflect.DeepEqual(errs, want) {
		t.Errorf("期望 %v，实际 %v", want, errs)
	}
}

func TestValidateCourse_InvalidCodeOnly(t *testing.T) {
	errs := ValidateCourse(CourseInput{
		Code:         strPtr("invalid"),
		Name:         strPtr("Test Course"),
		StudentCount: intPtr(100),
	})

	want := []string{ErrMsgCodeFormat}
	if !reflect.DeepEqual(errs, want) {
		t.Errorf("期望 %v，实际 %v", want, errs)
	}
}

func TestValidateCourse_CodeFormats(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"CPSC 110", true},
		{"MATH 200A", true},
		{"EC 101", true},
		{"ABCD 999Z", true},
		{"cpsc 110", false},
		{"C 110", false},
		{"ABCDE 110", false},
		{"CPSC110", false},
		{"CPSC 11", false},
		{"CPSC 1100", false},
		{"CPSC 110ab", false},
		{"CPSC\t110", true},
		{"CPSC\u00a0110", true},
		{"CPSC\u3000110", true},
		{"CPSC\u2028110", true},
		{"CPSC\ufeff110", true},
		{"CPSC\v110", true},
		{"CPSC  110", false},
		{"CPSC\u200b110", false},
	}

	for _, tt := range tests {
		errs := ValidateCourse(CourseInput{
			Code:         strPtr(tt.code),
			Name:         strPtr("Course"),
			StudentCount: intPtr(10),
		})
		if got := len(errs) == 0; got != tt.valid {
			t.Errorf("code=%q: 期望 valid=%v，实际 errs=%v", tt.code, tt.valid, errs)
		}
	}
}

func TestValidateCourse_StudentCount(t *testing.T) {
	base := func(n *int) []string {
		return ValidateCourse(CourseInput{
			Code:         strPtr("CPSC 110"),
			Name:         strPtr("Test Course"),
			StudentCount: n,
		})
	}

	if errs := base(intPtr(-1)); !reflect.DeepEqual(errs, []string{ErrMsgStudentsPositive}) {
		t.Errorf("-1 应报 must be positive，实际 %v", errs)
	}
	// 0 走 "required" 分支
	if errs := base(intPtr(0)); !reflect.DeepEqual(errs, []string{ErrMsgStudentsRequired}) {
		t.Errorf("0 应报 required，实际 %v", errs)
	}
	if errs := base(nil); !reflect.DeepEqual(errs, []string{ErrMsgStudentsRequired}) {
		t.Errorf("nil 应报 required，实际 %v", errs)
	}
}

func TestValidateCourse_Duration(t *testing.T) {
	tests := []struct {
		name     string
		duration *int
		wantErr  bool
	}{
		{"未提供", nil, false},
		{"零值视为未提供", intPtr(0), false},
		{"下界", intPtr(30), false},
		{"上界", intPtr(360), false},
		{"过短", intPtr(29), true},
		{"过长", intPtr(361), true},
		{"负数", intPtr(-10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateCourse(CourseInput{
				Code:         strPtr("CPSC 110"),
				Name:         strPtr("Test Course"),
				StudentCount: intPtr(50),
				Duration:     tt.duration,
			})
			if tt.wantErr && !reflect.DeepEqual(errs, []string{ErrMsgDurationOutOfRange}) {
				t.Errorf("期望时长错误，实际 %v", errs)
			}
			if !tt.wantErr && len(errs) != 0 {
				t.Errorf("期望无错误，实际 %v", errs)
			}
		})
	}
}

func TestValidateCourse_CollectsAllErrors(t *testing.T) {
	errs := ValidateCourse(CourseInput{
		Code:         strPtr("bad"),
		Name:         strPtr(""),
		StudentCount: intPtr(-5),
		Duration:     intPtr(400),
	})

	want := []string{ErrMsgCodeFormat, ErrMsgNameRequired, ErrMsgStudentsPositive, ErrMsgDurationOutOfRange}
	if !reflect.DeepEqual(errs, want) {
		t.Errorf("期望 %v，实际 %v", want, errs)
	}
}
