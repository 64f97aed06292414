package epub

type ParserMock struct {
	ParseFake func(dir string) (*Document, error)
}

func NewParserMock() ParserMock {
	return ParserMock{
		ParseFake: func(dir string) (*Document, error) {
			return &Document{}, nil
		},
	}
}

func (p ParserMock) Parse(dir string) (*Document, error) {
	return p.ParseFake(dir)
}
