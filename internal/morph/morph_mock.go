package morph

type GeneratorMock struct {
	ExpandFake func(word string) ([]string, error)
}

func NewGeneratorMock() *GeneratorMock {
	return &GeneratorMock{
		ExpandFake: func(word string) ([]string, error) {
			return []string{word}, nil
		},
	}
}

func (g *GeneratorMock) Expand(word string) ([]string, error) {
	return g.ExpandFake(word)
}

type VocabularyMock []string

func (v VocabularyMock) Terms() ([]string, error) {
	return v, nil
}
