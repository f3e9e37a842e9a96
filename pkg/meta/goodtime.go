package meta

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spencer-p/fishdash/pkg/timetricks"
)

const timeFmt = "3:04 PM"

// GoodTime represents a good time to go fishing.
type GoodTime struct {
	Time     time.Time     `json:"time"`
	Reasons  []string      `json:"reasons"`
	Duration time.Duration `json:"duration,omitempty"`
	Rating   Rating        `json:"rating"`

	// PrettyTime is a human-readable version of the time, relative to the
	// current date. Optional.
	PrettyTime string `json:"pretty_time,omitempty"`
}

func (gt *GoodTime) String() string {
	return fmt.Sprintf("%s, %s",
		gt.prettyTime(),
		strings.Join(gt.Reasons, " and "))
}

func (gt *GoodTime) prettyTime() string {
	return fmt.Sprintf("%s at %s", timetricks.Day(gt.Time, clock.Now()), gt.TimeRange())
}

// UpdatePrettyTime makes sure that the good time's pretty time is set.
func (gt *GoodTime) UpdatePrettyTime() {
	if gt.PrettyTime == "" {
		gt.PrettyTime = gt.prettyTime()
	}
}

// TimeRange returns a time range for the goodtime, similar to PrettyTime
// without the date.
func (gt *GoodTime) TimeRange() string {
	until := ""
	if gt.Duration != 0 {
		until = fmt.Sprintf(" until %s", gt.Time.Add(gt.Duration).Format(timeFmt))
	}
	return fmt.Sprintf("%s%s", gt.Time.Format(timeFmt), until)
}

func (gt *GoodTime) MarshalJSON() ([]byte, error) {
	// The alias drops this method so Marshal does not recurse.
	type plain GoodTime
	gt.UpdatePrettyTime()
	return json.Marshal((*plain)(gt))
}
