package calendar

import (
	"fmt"
	"time"
)

var jalaliMonths = [...]string{
	"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر", "دی", "بهمن", "اسفند",
}

// Años jalali en los que cambia el ciclo de años bisiestos.
var jalaliBreaks = [...]int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181, 1210,
	1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

// Jalali calendario solar hijri (persa).
// Las conversiones pasan por el número de día juliano.
type Jalali struct{}

func (Jalali) Name() string { return "jalali" }

func (Jalali) FromTime(t time.Time) Date {
	jdn := gregorianToJDN(t.Year(), int(t.Month()), t.Day())
	return jdnToJalali(jdn)
}

func (j Jalali) ToTime(d Date, loc *time.Location) (time.Time, error) {
	if d.Year <= jalaliBreaks[0] || d.Year >= jalaliBreaks[len(jalaliBreaks)-1] {
		return time.Time{}, fmt.Errorf("%w: año fuera de rango %s", ErrInvalidDate, d)
	}
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > j.DaysInMonth(d.Year, d.Month) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, d)
	}
	gy, gm, gd := jdnToGregorian(jalaliToJDN(d.Year, d.Month, d.Day))
	return time.Date(gy, time.Month(gm), gd, 12, 0, 0, 0, loc), nil
}

func (Jalali) DaysInMonth(year, month int) int {
	switch {
	case month <= 6:
		return 31
	case month <= 11:
		return 30
	case IsJalaliLeap(year):
		return 30
	default:
		return 29
	}
}

func (Jalali) MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return jalaliMonths[month-1]
}

// IsJalaliLeap indica si el año jalali tiene 30 días en Esfand.
func IsJalaliLeap(year int) bool {
	leap, _, _ := jalaliCycle(year)
	return leap == 0
}

// jalaliCycle devuelve la posición del año en su ciclo bisiesto (0 = bisiesto),
// el año gregoriano en que empieza y el día de marzo de Nowruz.
func jalaliCycle(jy int) (leap, gy, march int) {
	gy = jy + 621
	leapJ := -14
	jp := jalaliBreaks[0]
	jump := 0
	for i := 1; i < len(jalaliBreaks); i++ {
		jm := jalaliBreaks[i]
		jump = jm - jp
		if jy < jm {
			break
		}
		leapJ += jump/33*8 + (jump%33)/4
		jp = jm
	}
	n := jy - jp
	leapJ += n/33*8 + (n%33+3)/4
	if jump%33 == 4 && jump-n == 4 {
		leapJ++
	}
	leapG := gy/4 - (gy/100+1)*3/4 - 150
	march = 20 + leapJ - leapG

	if jump-n < 6 {
		n = n - jump + (jump+4)/33*33
	}
	leap = ((n+1)%33 - 1) % 4
	if leap == -1 {
		leap = 4
	}
	return leap, gy, march
}

func jalaliToJDN(jy, jm, jd int) int {
	_, gy, march := jalaliCycle(jy)
	return gregorianToJDN(gy, 3, march) + (jm-1)*31 - jm/7*(jm-7) + jd - 1
}

func jdnToJalali(jdn int) Date {
	gy, _, _ := jdnToGregorian(jdn)
	jy := gy - 621
	leap, _, march := jalaliCycle(jy)
	k := jdn - gregorianToJDN(gy, 3, march)
	if k >= 0 {
		if k <= 185 {
			return Date{Year: jy, Month: 1 + k/31, Day: k%31 + 1}
		}
		k -= 186
	} else {
		jy--
		k += 179
		if leap == 1 {
			k++
		}
	}
	return Date{Year: jy, Month: 7 + k/30, Day: k%30 + 1}
}

func gregorianToJDN(gy, gm, gd int) int {
	d := (gy+(gm-8)/6+100100)*1461/4 + (153*((gm+9)%12)+2)/5 + gd - 34840408
	return d - (gy+100100+(gm-8)/6)/100*3/4 + 752
}

func jdnToGregorian(jdn int) (gy, gm, gd int) {
	j := 4*jdn + 139361631
	j += (4*jdn+183187720)/146097*3/4*4 - 3908
	i := (j%1461)/4*5 + 308
	gd = (i%153)/5 + 1
	gm = (i/153)%12 + 1
	gy = j/1461 - 100100 + (8-gm)/6
	return gy, gm, gd
}
