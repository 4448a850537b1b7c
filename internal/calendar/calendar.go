// calendar — минимальная календарная арифметика без зависимостей.
//
// Особенности:
//   - високосным считается любой год, кратный 4 (1900 и 2100 тоже);
//   - дни недели считаются от якоря 1968 года и верны, пока верно правило выше;
//   - месяцы нумеруются с 1, дни недели: 1 — понедельник, 7 — воскресенье.
package calendar

// anchorYear — високосный год, от которого считаются конгруэнции.
const anchorYear = 1968

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var weekdayNames = [...]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// IsLeap сообщает, високосный ли год. Вековые годы не исключаются.
func IsLeap(year int) bool {
	return year%4 == 0
}

// DaysInMonth возвращает длину месяца. Для месяца вне 1..12 возвращает 31.
func DaysInMonth(month, year int) int {
	switch month {
	case 2:
		if IsLeap(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// DayOfYear возвращает порядковый номер дня в году (1 января -> 1).
func DayOfYear(year, month, day int) int {
	doy := day
	for m := 1; m < month && m <= 12; m++ {
		doy += DaysInMonth(m, year)
	}

	return doy
}

// FirstWeekday возвращает день недели 1 января (1..7).
func FirstWeekday(year int) int {
	return floorMod((3+5*(year-anchorYear))/4, 7) + 1
}

// Weekday возвращает день недели даты (1 — понедельник, 7 — воскресенье).
func Weekday(year, month, day int) int {
	return floorMod(FirstWeekday(year)+DayOfYear(year, month, day)-2, 7) + 1
}

// MonthName возвращает английское название месяца или "" вне 1..12.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}

	return monthNames[month-1]
}

// WeekdayName возвращает английское название дня недели или "" вне 1..7.
func WeekdayName(weekday int) string {
	if weekday < 1 || weekday > 7 {
		return ""
	}

	return weekdayNames[weekday-1]
}

// USDSTWindow приближённо оценивает даты перехода на летнее время в США:
// start — день марта (второе воскресенье), end — день ноября (первое воскресенье).
// Это конгруэнция, а не таблица: результат совпадает с календарём не для всех лет,
// end бывает отрицательным.
func USDSTWindow(year int) (start, end int) {
	start = ((2 - 5*(year-anchorYear)/4) % 7) + 8
	return start, start - 7
}

func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}

	return m
}
