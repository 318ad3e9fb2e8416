package story

type StoryContainer struct {
	Handler *Handler
}

func NewStoryContainer(gen StructuredGenerator) *StoryContainer {
	service := NewService(gen)
	handler := NewHandler(service)

	return &StoryContainer{
		Handler: handler,
	}
}
