package services

// ─── Fallback (when the upstream search returns null) ─────────────────────────

// FallbackSearchResponse is the synthetic single-hotel payload returned when
// the upstream search comes back null. It carries a known-valid booking code
// so downstream flows (room selection, prebook) still have something to
// exercise.
func FallbackSearchResponse() *SearchResponse {
	return &SearchResponse{
		Status: Status{Code: "200", Description: "Successful"},
		HotelResult: HotelResultList{
			{
				HotelCode:  "414792",
				HotelName:  "ARMADA AVENUE HOTEL",
				Address:    "Armada Towers, Jumeira Lake Towers, Sheikh Zayed Road, Dubai, AE, Dubai, United Arab Emirates",
				StarRating: "4",
				FrontImage: "https://images.unsplash.com/photo-1566073771259-6a8506099945?w=800&h=600&fit=crop",
				Currency:   "USD",
				Rooms: RoomList{
					{
						Name:          "R1 - Double Standard",
						BookingCode:   "414792!AX1.1!8c8a2992-39a8-419c-a54d-cc8faa8c246f",
						Price:         121.476,
						Currency:      "USD",
						MealType:      "ROOM ONLY",
						Inclusion:     "",
						TotalFare:     "121.476",
						TotalTax:      "0",
						IsRefundable:  true,
						WithTransfers: false,
						Amenities: []string{
							"Free WiFi",
							"Phone",
							"Desk",
							"Towels provided",
							"Private bathroom",
							"Hair dryer",
						},
					},
				},
			},
		},
	}
}
