package services_test

import "time"

func testTime() time.Time {
	return time.Date(2025, 1, 1, 12, 5, 0, 0, time.UTC)
}
