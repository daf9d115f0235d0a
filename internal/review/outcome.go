package review

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/rbarros/studytrack/internal/calendar"
)

// ErrInvalidTimeSpent is returned when the reported time string is not a
// digits-only HH:MM shape or its minutes component is 60 or more.
var ErrInvalidTimeSpent = errors.New("time spent must be digits in HH:MM form with minutes below 60")

// Outcome is the learner-reported result of one reinforcement review.
// It is validated in full before any state is touched.
type Outcome struct {
	// ReviewDate is the calendar day the review happened. The service fills
	// in today when left zero.
	ReviewDate calendar.Date

	MinutesSpent     int `validate:"min=0"`
	QuestionsTotal   int `validate:"min=0"`
	QuestionsCorrect int `validate:"min=0,ltefield=QuestionsTotal"`
}

// Accuracy returns the fraction of questions answered correctly, or 0 when
// no questions were reported.
func (o Outcome) Accuracy() float64 {
	if o.QuestionsTotal == 0 {
		return 0
	}
	return float64(o.QuestionsCorrect) / float64(o.QuestionsTotal)
}

// ParseMinutes converts an HH:MM-shaped input into total minutes. The input
// must be digits with at most one colon. Without a colon the last two digits
// are the minutes and the remainder the hours, so "130" means 1h30m and "45"
// means 45 minutes. A minutes component of 60 or more is rejected.
func ParseMinutes(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	var hoursPart, minutesPart string
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 2 || !isDigits(parts[0]) || !isDigits(parts[1]) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeSpent, s)
		}
		hoursPart, minutesPart = parts[0], parts[1]
	} else if len(s) <= 2 {
		minutesPart = s
	} else {
		hoursPart, minutesPart = s[:len(s)-2], s[len(s)-2:]
	}

	if !isDigits(minutesPart) || (hoursPart != "" && !isDigits(hoursPart)) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeSpent, s)
	}

	hours := 0
	if hoursPart != "" {
		hours, _ = strconv.Atoi(hoursPart)
	}
	minutes, _ := strconv.Atoi(minutesPart)
	if minutes >= 60 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeSpent, s)
	}

	return hours*60 + minutes, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NewOutcome builds and validates an Outcome from raw user input. The time
// string follows the ParseMinutes rules; reviewDate may be zero to mean
// today.
func NewOutcome(timeSpent string, questionsCorrect, questionsTotal int, reviewDate calendar.Date) (Outcome, error) {
	minutes, err := ParseMinutes(timeSpent)
	if err != nil {
		return Outcome{}, err
	}

	o := Outcome{
		ReviewDate:       reviewDate,
		MinutesSpent:     minutes,
		QuestionsTotal:   questionsTotal,
		QuestionsCorrect: questionsCorrect,
	}
	if err := o.Validate(); err != nil {
		return Outcome{}, err
	}
	return o, nil
}

// Validate checks the outcome's numeric constraints and returns a
// human-readable rejection when they do not hold.
func (o Outcome) Validate() error {
	if err := outcomeValidator.Struct(o); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("validate outcome: %w", err)
		}
		msgs := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			msgs = append(msgs, fieldError.Translate(outcomeTranslator))
		}
		return fmt.Errorf("invalid review outcome: %s", strings.Join(msgs, ", "))
	}
	return nil
}

var (
	outcomeValidator  *validator.Validate
	outcomeTranslator ut.Translator
)

func init() {
	v, trans, err := newOutcomeValidator()
	if err != nil {
		panic(fmt.Errorf("failed to initialize outcome validator: %w", err))
	}
	outcomeValidator = v
	outcomeTranslator = trans
}

func newOutcomeValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		switch fld.Name {
		case "QuestionsCorrect":
			return "questions correct"
		case "QuestionsTotal":
			return "questions total"
		case "MinutesSpent":
			return "minutes spent"
		}
		return fld.Name
	})

	return validate, trans, nil
}
