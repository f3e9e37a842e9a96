package handlers

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/pbkdf2"

	"github.com/spencer-p/fishdash/pkg/aggregate"
	"github.com/spencer-p/fishdash/pkg/geo"
	"github.com/spencer-p/fishdash/pkg/locate"
	"github.com/spencer-p/fishdash/pkg/meta"
	"github.com/spencer-p/fishdash/pkg/timetricks"
	"github.com/spencer-p/fishdash/pkg/visualize"
)

const (
	sessionName = "fishdash"
	// Session values describing the last location viewed.
	lastName    = "name"
	lastLabel   = "label"
	lastLat     = "lat"
	lastLon     = "lon"
	lastStation = "station"
	lastBuoy    = "buoy"
	// See https://developer.chrome.com/blog/cookie-max-age-expires.
	defaultMaxAge = 60 * 60 * 24 * 400 // 400 days in seconds.

	devKey = "deadbeef"
)

func newStore(sessionKey, encryptionKey string) *sessions.CookieStore {
	if sessionKey == "" {
		sessionKey = devKey
	}
	if encryptionKey == "" {
		encryptionKey = devKey
	}
	store := &sessions.CookieStore{
		Codecs: securecookie.CodecsFromPairs(
			[]byte(sessionKey),
			pbkdf2.Key([]byte(encryptionKey), []byte{}, 4096, 32, sha1.New),
		),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   defaultMaxAge,
			Secure:   true,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
	store.MaxAge(defaultMaxAge)
	return store
}

func remember(session *sessions.Session, loc locate.Location) {
	session.Values[lastName] = loc.Name
	session.Values[lastLabel] = loc.DisplayName
	session.Values[lastLat] = loc.Lat
	session.Values[lastLon] = loc.Lon
	session.Values[lastStation] = loc.StationID
	session.Values[lastBuoy] = loc.BuoyID
}

func recall(session *sessions.Session) (locate.Location, bool) {
	lat, latOK := session.Values[lastLat].(float64)
	lon, lonOK := session.Values[lastLon].(float64)
	if !latOK || !lonOK {
		return locate.Location{}, false
	}
	loc := locate.Location{Coordinates: geo.Coordinates{Lat: lat, Lon: lon}}
	loc.Name, _ = session.Values[lastName].(string)
	loc.DisplayName, _ = session.Values[lastLabel].(string)
	loc.StationID, _ = session.Values[lastStation].(string)
	loc.BuoyID, _ = session.Values[lastBuoy].(string)
	return loc.WithLabel(), loc.Valid()
}

type TemplateInput struct {
	Prefix   string
	Location locate.Location
	Fixed    []locate.Location
	Date     string
	PrevDate string
	NextDate string
	Result   *aggregate.Result
	// GoodTimes are grouped by day for display.
	GoodTimes []PresentationElement
	TideImage template.HTML
	Error     string
	// Query repeats the location part of the request for links.
	Query template.URL
}

type PresentationElement struct {
	Date      string
	GoodTimes []meta.GoodTime
}

var funcs = template.FuncMap{
	"feet": func(h *float64) string {
		if h == nil {
			return "unavailable"
		}
		return fmt.Sprintf("%.1f ft", *h)
	},
	"clock": func(t *time.Time) string {
		if t == nil {
			return "unavailable"
		}
		return t.Format("3:04 PM")
	},
}

// makeServerSideIndex serves the dashboard fully rendered on the server.
// Mandatory source failures replace it with an error page.
func (s *server) makeServerSideIndex() http.HandlerFunc {
	indexTemplate := template.Must(template.New("index.template.html").Funcs(funcs).ParseFS(content, "static/index.template.html"))

	return func(w http.ResponseWriter, r *http.Request) {
		input := TemplateInput{
			Prefix: strings.TrimSuffix(s.prefix, "/"),
			Fixed:  s.Resolver.Fixed(),
		}

		result, loc, err := s.fetch(w, r)
		input.Location = loc
		code := http.StatusOK
		if err != nil {
			code = statusFor(err)
			input.Error = err.Error()
			s.Logger.Warn("dashboard unavailable", "url", r.URL.String(), "status", code, "error", err)
		} else {
			s.fillDashboard(&input, result, loc)
		}

		var page bytes.Buffer
		if err := indexTemplate.Execute(&page, input); err != nil {
			s.Logger.Error("execute template", "error", err)
			http.Error(w, "failed to render page", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(code)
		page.WriteTo(w)
	}
}

func (s *server) fillDashboard(input *TemplateInput, result *aggregate.Result, loc locate.Location) {
	day := result.Generated.In(s.Location)
	if len(result.Forecast) > 0 && !timetricks.SameDay(result.Forecast[0].Time.In(s.Location), day) {
		day = result.Forecast[0].Time.In(s.Location)
	}
	input.Result = result
	input.Date = day.Format(dateFormat)
	input.PrevDate = day.AddDate(0, 0, -1).Format(dateFormat)
	input.NextDate = day.AddDate(0, 0, 1).Format(dateFormat)
	input.Query = template.URL(s.query(loc))
	input.GoodTimes = groupByDay(result.GoodTimes)

	img := visualize.NewTidal(result.Tides, result.Extrema, result.Sun)
	img.SetDate(day)
	var b bytes.Buffer
	if _, err := img.Encode(&b); err != nil {
		s.Logger.Debug("no tide image", "error", err)
		return
	}
	input.TideImage = template.HTML(b.String())
}

// query builds the location query string that reproduces loc.
func (s *server) query(loc locate.Location) string {
	if fixed, err := s.Resolver.Lookup(loc.Name); err == nil && fixed.Coordinates == loc.Coordinates {
		return url.Values{"location": {loc.Name}}.Encode()
	}
	v := url.Values{}
	v.Set("lat", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	v.Set("lon", strconv.FormatFloat(loc.Lon, 'f', -1, 64))
	for key, value := range map[string]string{"name": loc.Name, "station": loc.StationID, "buoy": loc.BuoyID} {
		if value != "" {
			v.Set(key, value)
		}
	}
	return v.Encode()
}

func groupByDay(goodTimes []meta.GoodTime) []PresentationElement {
	var result []PresentationElement
	for _, gt := range goodTimes {
		gt.UpdatePrettyTime()
		day := gt.Time.Format("Monday, January 2")
		if n := len(result); n > 0 && result[n-1].Date == day {
			result[n-1].GoodTimes = append(result[n-1].GoodTimes, gt)
			continue
		}
		result = append(result, PresentationElement{
			Date:      day,
			GoodTimes: []meta.GoodTime{gt},
		})
	}
	return result
}
