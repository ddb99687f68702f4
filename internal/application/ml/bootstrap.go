package ml

import (
	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/domain/entity"
)

// bootstrapRepeat replicates the seed samples so every category has enough
// data to survive the stratified hold-out split.
const bootstrapRepeat = 10

// BootstrapSamples returns the deterministic built-in training set used when
// no labeled data is supplied. It covers every top-level category the model
// must be able to predict, so the model is never left completely untrained.
func BootstrapSamples() []entity.LabeledSample {
	seed := []entity.LabeledSample{
		// Food & Dining
		{Description: "MCDONALD'S #123", MerchantName: "McDonald's", Amount: decimal.RequireFromString("8.50"), Category: entity.CategoryFoodDining},
		{Description: "STARBUCKS COFFEE", MerchantName: "Starbucks", Amount: decimal.RequireFromString("5.25"), Category: entity.CategoryFoodDining},
		{Description: "WHOLE FOODS MARKET", MerchantName: "Whole Foods", Amount: decimal.RequireFromString("67.89"), Category: entity.CategoryFoodDining},
		{Description: "RESTAURANT PAYMENT", MerchantName: "Local Bistro", Amount: decimal.RequireFromString("45.00"), Category: entity.CategoryFoodDining},

		// Shopping
		{Description: "AMAZON PURCHASE", MerchantName: "Amazon", Amount: decimal.RequireFromString("29.99"), Category: entity.CategoryShopping},
		{Description: "TARGET STORE", MerchantName: "Target", Amount: decimal.RequireFromString("56.78"), Category: entity.CategoryShopping},
		{Description: "APPLE STORE ONLINE", MerchantName: "Apple", Amount: decimal.RequireFromString("199.00"), Category: entity.CategoryShopping},

		// Transportation
		{Description: "SHELL GAS STATION", MerchantName: "Shell", Amount: decimal.RequireFromString("35.00"), Category: entity.CategoryTransportation},
		{Description: "UBER RIDE", MerchantName: "Uber", Amount: decimal.RequireFromString("12.50"), Category: entity.CategoryTransportation},
		{Description: "METRO TRANSIT", MerchantName: "Metro", Amount: decimal.RequireFromString("2.75"), Category: entity.CategoryTransportation},

		// Bills & Utilities
		{Description: "ELECTRIC BILL PAYMENT", MerchantName: "Electric Company", Amount: decimal.RequireFromString("89.45"), Category: entity.CategoryBillsUtilities},
		{Description: "INTERNET SERVICE", MerchantName: "Comcast", Amount: decimal.RequireFromString("79.99"), Category: entity.CategoryBillsUtilities},
		{Description: "PHONE BILL", MerchantName: "Verizon", Amount: decimal.RequireFromString("65.00"), Category: entity.CategoryBillsUtilities},

		// Entertainment
		{Description: "NETFLIX SUBSCRIPTION", MerchantName: "Netflix", Amount: decimal.RequireFromString("15.99"), Category: entity.CategoryEntertainment},
		{Description: "MOVIE THEATER", MerchantName: "AMC", Amount: decimal.RequireFromString("24.00"), Category: entity.CategoryEntertainment},
		{Description: "SPOTIFY PREMIUM", MerchantName: "Spotify", Amount: decimal.RequireFromString("9.99"), Category: entity.CategoryEntertainment},

		// Healthcare
		{Description: "PHARMACY PRESCRIPTION", MerchantName: "CVS", Amount: decimal.RequireFromString("25.50"), Category: entity.CategoryHealthcare},
		{Description: "DOCTOR VISIT COPAY", MerchantName: "Medical Center", Amount: decimal.RequireFromString("30.00"), Category: entity.CategoryHealthcare},

		// Income
		{Description: "SALARY DEPOSIT", MerchantName: "Employer", Amount: decimal.RequireFromString("3500.00"), Category: entity.CategorySalary},
		{Description: "FREELANCE PAYMENT", MerchantName: "Client", Amount: decimal.RequireFromString("500.00"), Category: entity.CategoryFreelance},
	}

	samples := make([]entity.LabeledSample, 0, len(seed)*bootstrapRepeat)
	for i := 0; i < bootstrapRepeat; i++ {
		samples = append(samples, seed...)
	}
	return samples
}
