// timestamp переводит UTC-метку публикации статьи в локальную
// строку для показа пользователю.
//
// Особенности:
//   - разбор не опирается на time.Parse: берутся первые пять групп цифр
//     (год, месяц, день, час, минута), диапазоны не проверяются;
//   - смещение наблюдателя — целое число часов, сдвиг пересекает не больше
//     одной границы суток;
//   - летнее время определяется эвристикой по ТЕКУЩЕМУ моменту наблюдателя,
//     а не по дате статьи (унаследованное поведение).
package timestamp

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/newsreader/headlines/internal/calendar"
)

// ErrMalformedTimestamp — во входной строке меньше пяти групп цифр
// или группа пустая (два разделителя подряд).
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// LocalTimestamp — дата/время, сдвинутые в пояс наблюдателя.
type LocalTimestamp struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	// TimezoneLabel — "Eastern", "Central", "Mountain", "Pacific" или "UTC[+-N]".
	TimezoneLabel string
	// TwelveHourRegion — один из четырёх поясов США: формат "Month Day, Year".
	TwelveHourRegion bool
}

// Fields — пять групп, разобранных из строки.
type Fields struct {
	Year, Month, Day, Hour, Minute int
}

// Parse выделяет пять групп цифр слева направо. Каждый символ-нецифра (руна) закрывает
// текущую группу; после пятой группы следующая нецифра останавливает разбор.
// Цифры в конце строки без завершающего разделителя не учитываются.
func Parse(iso string) (Fields, error) {
	const op = "timestamp/timestamp/Parse"

	var groups [5]int
	var run []byte
	index := 0

	for _, c := range iso {
		if c >= '0' && c <= '9' {
			run = append(run, byte(c))
			continue
		}

		if index > 4 {
			break
		}

		if len(run) == 0 {
			return Fields{}, fmt.Errorf("%s: empty group %d in %q: %w", op, index, iso, ErrMalformedTimestamp)
		}

		n, err := strconv.Atoi(string(run))
		if err != nil {
			return Fields{}, fmt.Errorf("%s: group %d in %q: %w", op, index, iso, ErrMalformedTimestamp)
		}

		groups[index] = n
		index++
		run = run[:0]
	}

	if index < 5 {
		return Fields{}, fmt.Errorf("%s: %d of 5 groups in %q: %w", op, index, iso, ErrMalformedTimestamp)
	}

	return Fields{
		Year:   groups[0],
		Month:  groups[1],
		Day:    groups[2],
		Hour:   groups[3],
		Minute: groups[4],
	}, nil
}

// Label возвращает подпись пояса для смещения в часах.
func Label(offset int) string {
	switch offset {
	case -5:
		return "Eastern"
	case -6:
		return "Central"
	case -7:
		return "Mountain"
	case -8:
		return "Pacific"
	}

	switch {
	case offset < 0:
		return "UTC" + strconv.Itoa(offset)
	case offset > 0:
		return "UTC+" + strconv.Itoa(offset)
	default:
		return "UTC"
	}
}

// IsTwelveHourRegion — смещение попадает в один из поясов США [-8,-5].
func IsTwelveHourRegion(offset int) bool {
	return offset >= -8 && offset <= -5
}

// Shift применяет смещение к часу с переносом не более чем на одни сутки.
func Shift(f Fields, offset int) Fields {
	hour := f.Hour + offset

	switch {
	case hour < 0:
		if f.Day-1 == 0 {
			if f.Month-1 == 0 {
				f.Month = 12
				f.Year--
			} else {
				f.Month--
			}
			f.Day = calendar.DaysInMonth(f.Month, f.Year)
		} else {
			f.Day--
		}
		hour += 24

	case hour > 23:
		if f.Day+1 > calendar.DaysInMonth(f.Month, f.Year) {
			if f.Month+1 > 12 {
				f.Month = 1
				f.Year++
			} else {
				f.Month++
			}
			f.Day = 1
		} else {
			f.Day++
		}
		hour -= 24
	}

	f.Hour = hour
	return f
}

// Normalize разбирает iso, определяет применяемое смещение по сырому смещению
// наблюдателя и его текущему моменту now, и сдвигает время статьи.
func Normalize(iso string, observerOffsetHours int, now Moment) (LocalTimestamp, error) {
	const op = "timestamp/timestamp/Normalize"

	f, err := Parse(iso)
	if err != nil {
		return LocalTimestamp{}, fmt.Errorf("%s: %w", op, err)
	}

	offset := AppliedOffset(observerOffsetHours, now)
	f = Shift(f, offset)

	return LocalTimestamp{
		Year:             f.Year,
		Month:            f.Month,
		Day:              f.Day,
		Hour:             f.Hour,
		Minute:           f.Minute,
		TimezoneLabel:    Label(offset),
		TwelveHourRegion: IsTwelveHourRegion(offset),
	}, nil
}

// Weekday возвращает название дня недели.
func (t LocalTimestamp) Weekday() string {
	return calendar.WeekdayName(calendar.Weekday(t.Year, t.Month, t.Day))
}

// Clock возвращает "H:MM a.m./p.m.". Час 0 остаётся "0", полдень — "12 a.m.".
func (t LocalTimestamp) Clock() string {
	if t.Hour > 12 {
		return fmt.Sprintf("%d:%02d p.m.", t.Hour-12, t.Minute)
	}

	return fmt.Sprintf("%d:%02d a.m.", t.Hour, t.Minute)
}

// String рендерит метку в региональном формате.
func (t LocalTimestamp) String() string {
	if t.TwelveHourRegion {
		return fmt.Sprintf("%s, %s %d, %d - %s %s",
			t.Weekday(), calendar.MonthName(t.Month), t.Day, t.Year, t.Clock(), t.TimezoneLabel)
	}

	return fmt.Sprintf("%s, %d %s %d - %s %s",
		t.Weekday(), t.Day, calendar.MonthName(t.Month), t.Year, t.Clock(), t.TimezoneLabel)
}
