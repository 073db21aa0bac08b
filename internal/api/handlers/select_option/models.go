package select_option

// SelectOptionRequest выбор варианта размещения по индексу в показанном списке
type SelectOptionRequest struct {
	OptionIndex int `json:"optionIndex"`
}
