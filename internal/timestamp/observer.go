package timestamp

import (
	"time"

	"github.com/newsreader/headlines/internal/calendar"
)

// Moment — текущая локальная дата наблюдателя, нужная эвристике летнего времени.
type Moment struct {
	Year, Month, Day, Hour int
}

// MomentOf снимает Moment с time.Time в его собственной локации.
func MomentOf(t time.Time) Moment {
	return Moment{Year: t.Year(), Month: int(t.Month()), Day: t.Day(), Hour: t.Hour()}
}

// InUSDST сообщает, действует ли сейчас летнее время по правилу США.
// Для смещений вне [-7,-4] всегда false.
func InUSDST(rawOffset int, now Moment) bool {
	if rawOffset < -7 || rawOffset > -4 {
		return false
	}

	start, end := calendar.USDSTWindow(now.Year)

	return (now.Month > 3 && now.Month < 11) ||
		(now.Month == 3 && now.Day > start) ||
		(now.Month == 3 && now.Day == start && now.Hour >= 2) ||
		(now.Month == 11 && now.Day < end) ||
		(now.Month == 11 && now.Day == end && now.Hour < 2)
}

// AppliedOffset переводит сырое смещение в «зимнее», если действует летнее время.
func AppliedOffset(rawOffset int, now Moment) int {
	if InUSDST(rawOffset, now) {
		return rawOffset - 1
	}

	return rawOffset
}

// Observer описывает наблюдателя: откуда берётся текущее время и его пояс.
// Нулевое значение использует time.Now в локальном поясе процесса.
type Observer struct {
	// Now — источник текущего времени; его Location задаёт пояс наблюдателя.
	Now func() time.Time
}

// NewObserver создаёт наблюдателя в поясе loc (nil — time.Local).
func NewObserver(loc *time.Location) Observer {
	if loc == nil {
		loc = time.Local
	}

	return Observer{Now: func() time.Time { return time.Now().In(loc) }}
}

func (o Observer) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}

	return o.Now()
}

// Offset возвращает текущее сырое смещение наблюдателя от UTC в целых часах
// (дробная часть отбрасывается к нулю).
func (o Observer) Offset() int {
	_, secs := o.now().Zone()
	return secs / 3600
}

// Normalize — Normalize с текущим смещением и моментом наблюдателя.
func (o Observer) Normalize(iso string) (LocalTimestamp, error) {
	now := o.now()
	_, secs := now.Zone()

	return Normalize(iso, secs/3600, MomentOf(now))
}

// Render возвращает строку для показа или исходную строку, если разобрать её нельзя.
func (o Observer) Render(iso string) string {
	ts, err := o.Normalize(iso)
	if err != nil {
		return iso
	}

	return ts.String()
}
