package models

// MeasurementField holds the validation rule for one body measurement.
type MeasurementField struct {
	Min   float64
	Max   float64
	Unit  string
	Label string
}

// MeasurementFields is the fixed set of measurements taken for every
// customer. Keys are the field names used on the measurement form and in
// stored records; values carry the accepted range and unit.
var MeasurementFields = map[string]MeasurementField{
	"قد":          {Min: 50, Max: 250, Unit: "cm", Label: "قد"},
	"شانه_یک":     {Min: 30, Max: 80, Unit: "cm", Label: "شانه یک"},
	"شانه_دو":     {Min: 30, Max: 80, Unit: "cm", Label: "شانه دو"},
	"آستین_یک":    {Min: 40, Max: 100, Unit: "cm", Label: "آستین یک"},
	"آستین_دو":    {Min: 15, Max: 50, Unit: "cm", Label: "آستین دو"},
	"آستین_سه":    {Min: 10, Max: 30, Unit: "cm", Label: "آستین سه"},
	"بغل":         {Min: 30, Max: 80, Unit: "cm", Label: "بغل"},
	"دامن":        {Min: 50, Max: 150, Unit: "cm", Label: "دامن"},
	"گردن":        {Min: 30, Max: 60, Unit: "cm", Label: "گردن"},
	"دور_سینه":    {Min: 70, Max: 150, Unit: "cm", Label: "دور سینه"},
	"شلوار":       {Min: 80, Max: 130, Unit: "cm", Label: "شلوار"},
	"دم_پاچه":     {Min: 15, Max: 40, Unit: "cm", Label: "دم پاچه"},
	"بر_تمبان":    {Min: 20, Max: 60, Unit: "cm", Label: "بر تهمان"},
	"خشتک":        {Min: 15, Max: 40, Unit: "cm", Label: "خشتک"},
	"چاک_پتی":     {Min: 10, Max: 50, Unit: "cm", Label: "چاک پتی"},
	"تعداد_سفارش": {Min: 1, Max: 10, Unit: "عدد", Label: "تعداد سفارش"},
	"مقدار_تکه":   {Min: 1, Max: 5, Unit: "عدد", Label: "مقدار تکه"},
}

// Garment model catalogs shown on the models tab. The store treats the
// selected labels as opaque strings; these lists only drive the UI.
var (
	YakhunModels  = []string{"آف دار", "چپه یخن", "پاکستانی", "ملی", "شهبازی", "خامک", "قاسمی"}
	SleeveModels  = []string{"کفک", "ساده شیش بخیه", "بندک", "پر بخیه", "آف دار", "لایی یک انچ"}
	SkirtModels   = []string{"دامن یک بخیه", "دامن دوبخیه", "دامن چهارکنج", "دامن ترخیز", "دامن گاوی"}
	FeatureModels = []string{"جیب رو", "جیب شلوار", "یک بخیه سند", "دو بخیه سند", "مکمل دو بخیه"}
)

// DaysOfWeek lists delivery days in calendar order, Saturday first.
var DaysOfWeek = []string{"شنبه", "یکشنبه", "دوشنبه", "سه‌شنبه", "چهارشنبه", "پنجشنبه", "جمعه"}
