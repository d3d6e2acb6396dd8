package formatting

// pluralize выбирает форму слова по числу: 1 занятие, 2 занятия, 5 занятий
func pluralize(count int, one, few, many string) string {
	if count < 0 {
		count = -count
	}
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeSessions возвращает правильное склонение слова "занятие"
func PluralizeSessions(count int) string {
	return pluralize(count, "занятие", "занятия", "занятий")
}

// PluralizeProposals возвращает правильное склонение слова "предложение"
func PluralizeProposals(count int) string {
	return pluralize(count, "предложение", "предложения", "предложений")
}

// PluralizeTutors возвращает правильное склонение слова "тьютор"
func PluralizeTutors(count int) string {
	return pluralize(count, "тьютор", "тьютора", "тьюторов")
}
