// Package quran provides the static surah metadata table consumed by the
// engine for ayah-range validation and verse counting. The table is never
// persisted; it is compiled in.
package quran

import (
	"fmt"

	"github.com/hafalan-hub/hafalan-engine/internal/domain/shared"
)

// TotalSurahs is the number of surahs in the mushaf.
const TotalSurahs = 114

// Surah represents a chapter of the Quran.
type Surah struct {
	Number      int
	Name        string
	TotalVerses int
}

// Lookup returns the surah metadata for a surah number.
func Lookup(number int) (Surah, error) {
	if number < 1 || number > TotalSurahs {
		return Surah{}, shared.ErrUnknownSurah
	}
	return Surah{
		Number:      number,
		Name:        surahNames[number-1],
		TotalVerses: verseCounts[number-1],
	}, nil
}

// VerseCount returns the number of ayahs in a surah, 0 for unknown numbers.
func VerseCount(number int) int {
	if number < 1 || number > TotalSurahs {
		return 0
	}
	return verseCounts[number-1]
}

// AyahRange identifies a contiguous span of verses, possibly crossing
// surah boundaries.
type AyahRange struct {
	StartSurah int `json:"start_surah"`
	StartAyah  int `json:"start_ayah"`
	EndSurah   int `json:"end_surah"`
	EndAyah    int `json:"end_ayah"`
}

// Validate checks the range against the surah table.
func (r AyahRange) Validate() error {
	start, err := Lookup(r.StartSurah)
	if err != nil {
		return err
	}
	end, err := Lookup(r.EndSurah)
	if err != nil {
		return err
	}
	if r.StartAyah < 1 || r.StartAyah > start.TotalVerses {
		return shared.ErrInvalidAyahRange
	}
	if r.EndAyah < 1 || r.EndAyah > end.TotalVerses {
		return shared.ErrInvalidAyahRange
	}
	if r.EndSurah < r.StartSurah {
		return shared.ErrInvalidAyahRange
	}
	if r.StartSurah == r.EndSurah && r.EndAyah < r.StartAyah {
		return shared.ErrInvalidAyahRange
	}
	return nil
}

// AyahCount returns the number of ayahs covered by the range, summing
// per-surah verse counts when the range spans surah boundaries.
func (r AyahRange) AyahCount() int {
	if r.StartSurah == r.EndSurah {
		return r.EndAyah - r.StartAyah + 1
	}

	count := VerseCount(r.StartSurah) - r.StartAyah + 1
	for s := r.StartSurah + 1; s < r.EndSurah; s++ {
		count += VerseCount(s)
	}
	count += r.EndAyah
	return count
}

// ApproximateAyahCount reproduces the historical single-surah formula that
// ignores surah boundaries. Kept only behind a feature flag so old snapshots
// can be compared against their original statistics.
func (r AyahRange) ApproximateAyahCount() int {
	return r.EndAyah - r.StartAyah + 1
}

// String returns the conventional "surah:ayah-surah:ayah" form.
func (r AyahRange) String() string {
	if r.StartSurah == r.EndSurah {
		return fmt.Sprintf("%d:%d-%d", r.StartSurah, r.StartAyah, r.EndAyah)
	}
	return fmt.Sprintf("%d:%d-%d:%d", r.StartSurah, r.StartAyah, r.EndSurah, r.EndAyah)
}

// verseCounts holds the ayah count of each surah, indexed by surah number - 1.
var verseCounts = [TotalSurahs]int{
	7, 286, 200, 176, 120, 165, 206, 75, 129, 109,
	123, 111, 43, 52, 99, 128, 111, 110, 98, 135,
	112, 78, 118, 64, 77, 227, 93, 88, 69, 60,
	34, 30, 73, 54, 45, 83, 182, 88, 75, 85,
	54, 53, 89, 59, 37, 35, 38, 29, 18, 45,
	60, 49, 62, 55, 78, 96, 29, 22, 24, 13,
	14, 11, 11, 18, 12, 12, 30, 52, 52, 44,
	28, 28, 20, 56, 40, 31, 50, 40, 46, 42,
	29, 19, 36, 25, 22, 17, 19, 26, 30, 20,
	15, 21, 11, 8, 8, 19, 5, 8, 8, 11,
	11, 8, 3, 9, 5, 4, 7, 3, 6, 3,
	5, 4, 5, 6,
}

// surahNames holds the Latin names, indexed by surah number - 1.
var surahNames = [TotalSurahs]string{
	"Al-Fatihah", "Al-Baqarah", "Ali 'Imran", "An-Nisa", "Al-Ma'idah",
	"Al-An'am", "Al-A'raf", "Al-Anfal", "At-Taubah", "Yunus",
	"Hud", "Yusuf", "Ar-Ra'd", "Ibrahim", "Al-Hijr",
	"An-Nahl", "Al-Isra", "Al-Kahf", "Maryam", "Taha",
	"Al-Anbiya", "Al-Hajj", "Al-Mu'minun", "An-Nur", "Al-Furqan",
	"Asy-Syu'ara", "An-Naml", "Al-Qasas", "Al-'Ankabut", "Ar-Rum",
	"Luqman", "As-Sajdah", "Al-Ahzab", "Saba", "Fatir",
	"Yasin", "As-Saffat", "Sad", "Az-Zumar", "Gafir",
	"Fussilat", "Asy-Syura", "Az-Zukhruf", "Ad-Dukhan", "Al-Jasiyah",
	"Al-Ahqaf", "Muhammad", "Al-Fath", "Al-Hujurat", "Qaf",
	"Az-Zariyat", "At-Tur", "An-Najm", "Al-Qamar", "Ar-Rahman",
	"Al-Waqi'ah", "Al-Hadid", "Al-Mujadalah", "Al-Hasyr", "Al-Mumtahanah",
	"As-Saff", "Al-Jumu'ah", "Al-Munafiqun", "At-Tagabun", "At-Talaq",
	"At-Tahrim", "Al-Mulk", "Al-Qalam", "Al-Haqqah", "Al-Ma'arij",
	"Nuh", "Al-Jinn", "Al-Muzzammil", "Al-Muddassir", "Al-Qiyamah",
	"Al-Insan", "Al-Mursalat", "An-Naba", "An-Nazi'at", "'Abasa",
	"At-Takwir", "Al-Infitar", "Al-Mutaffifin", "Al-Insyiqaq", "Al-Buruj",
	"At-Tariq", "Al-A'la", "Al-Gasyiyah", "Al-Fajr", "Al-Balad",
	"Asy-Syams", "Al-Lail", "Ad-Duha", "Asy-Syarh", "At-Tin",
	"Al-'Alaq", "Al-Qadr", "Al-Bayyinah", "Az-Zalzalah", "Al-'Adiyat",
	"Al-Qari'ah", "At-Takasur", "Al-'Asr", "Al-Humazah", "Al-Fil",
	"Quraisy", "Al-Ma'un", "Al-Kausar", "Al-Kafirun", "An-Nasr",
	"Al-Lahab", "Al-Ikhlas", "Al-Falaq", "An-Nas",
}
