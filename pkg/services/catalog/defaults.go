package catalog

import "github.com/unsovich/BBDashboard/pkg/models/domain"

const (
	CategorySMMEngagement  = "SMM (Вовлеченность)"
	CategorySMMFundraising = "SMM (Фандрайзинг)"
	CategoryPrograms       = "Программы"
	CategoryFinance        = "Финансы и Админ"
)

var defaultCategories = []domain.Category{
	{
		Name: CategorySMMEngagement,
		KPIs: []domain.KPI{
			{ID: "SMM.ER", DisplayName: "Engagement Rate (ER), %"},
			{ID: "SMM.SHARE", DisplayName: "Share Rate (Репосты), %"},
			{ID: "SMM.CTR", DisplayName: "CTR (Клики на сайт), %"},
		},
	},
	{
		Name: CategorySMMFundraising,
		KPIs: []domain.KPI{
			{ID: "SMM.DCR", DisplayName: "DCR (Конверсия в донат), %"},
			{ID: "SMM.MONEY", DisplayName: "Сумма сбора SMM, руб."},
		},
	},
	{
		Name: CategoryPrograms,
		KPIs: []domain.KPI{
			{ID: "PROG.FILL", DisplayName: "Заполняемость центров (Верь в себя), %"},
			{ID: "PROG.TIME", DisplayName: "Своевременность помощи (Нужна помощь), %"},
			{ID: "PROG.MONITOR", DisplayName: "Мониторинг использования (ЯЖивой), %"},
		},
	},
	{
		Name: CategoryFinance,
		KPIs: []domain.KPI{
			{ID: "FIN.PLAN", DisplayName: "Выполнение плана фандрайзинга (Общий), %"},
			{ID: "FIN.BUDGET", DisplayName: "Соблюдение бюджета (Расходы), %"},
			{ID: "HR.VOL", DisplayName: "Прирост волонтеров, %"},
		},
	},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultCategories)
	if err != nil {
		panic(err)
	}
	return c
}
