package enum

import "encoding/json"

// AttendanceStatus is the daily attendance mark of a staff member
type AttendanceStatus int

const (
	AttendancePresent   AttendanceStatus = 0
	AttendanceAbsent    AttendanceStatus = 1
	AttendancePaidLeave AttendanceStatus = 2
	AttendanceHalfDay   AttendanceStatus = 3
)

var attendanceStatusNames = [...]string{"PRESENT", "ABSENT", "PAID_LEAVE", "HALF_DAY"}

func (s AttendanceStatus) String() string {
	if int(s) < 0 || int(s) >= len(attendanceStatusNames) {
		return attendanceStatusNames[0]
	}
	return attendanceStatusNames[s]
}

func ParseAttendanceStatus(name string) (AttendanceStatus, bool) {
	for i, n := range attendanceStatusNames {
		if n == name {
			return AttendanceStatus(i), true
		}
	}
	return AttendancePresent, false
}

func (s AttendanceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *AttendanceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = AttendanceStatus(i)
		return nil
	}
	if parsed, ok := ParseAttendanceStatus(str); ok {
		*s = parsed
	}
	return nil
}
