package emailbuilder

// ExampleDocument builds a small newsletter exercising most block variants.
// Used by the CLI documentation and as a test fixture.
func ExampleDocument() Document {
	return NewDocument(
		NewSection(
			&TextBlock{
				BaseBlock: BaseBlock{ID: NewBlockID()},
				Content:   `<h1>Welcome</h1><p>Hi <span class="mention" data-id="first-name">@first-name</span>, thanks for subscribing.</p>`,
			},
			&ButtonBlock{
				BaseBlock: BaseBlock{ID: NewBlockID()},
				Text:      "Read the latest issue",
				Link:      "example.com/issues/latest",
				Style:     "filled",
				Size:      "fit",
				Centered:  true,
			},
			&DividerBlock{BaseBlock: BaseBlock{ID: NewBlockID()}},
		),
		NewSection(
			&CardsBlock{
				BaseBlock: BaseBlock{ID: NewBlockID()},
				Title:     "This week",
				Cards: []CardItem{
					{Title: "Deliverability basics", Description: "Keeping your sender reputation healthy.", Label: "Guide"},
					{Title: "Template gallery", Description: "Fresh layouts to start from.", Label: "New"},
					{Title: "Changelog", Description: "Everything we shipped in August."},
				},
			},
			&AuthorBlock{
				BaseBlock: BaseBlock{ID: NewBlockID()},
				Name:      "Avery Quinn",
				Subtitle:  "Editor",
				Links:     []SocialLink{{Icon: "bluesky", URL: "bsky.app/profile/avery"}},
			},
		),
	)
}

// ExampleFooter builds a footer fixture matching ExampleDocument.
func ExampleFooter() *FooterData {
	return &FooterData{
		Name:          "Letterflow Weekly",
		Subtitle:      "Product news and email craft",
		Address:       "548 Market St, San Francisco, CA",
		Reason:        "You are receiving this because you signed up on letterflow.com.",
		CopyrightName: "Letterflow Inc.",
		SocialsStyle:  "filled",
		SocialsColor:  "#111827",
		Links: []SocialLink{
			{Icon: "x", URL: "https://x.com/letterflow"},
			{Icon: "linkedin", URL: "https://linkedin.com/company/letterflow"},
		},
	}
}
