package repository

import (
	"quiz_web/internal/models"
	"quiz_web/internal/storage"
)

type QuestionRepository interface {
	Create(question *models.Question) error
	FindByID(id uint) (*models.Question, error)
	FindBySubjectGrade(subject, gradeLevel string, limit int) ([]models.Question, error)
	// EnsureDefaults 冪等地為指定科目/年級寫入預設題庫
	// 題庫不足時由遊戲引擎在選題前明確調用，回傳該科目/年級的預設題目
	EnsureDefaults(subject, gradeLevel string) ([]models.Question, error)
}

type questionRepository struct {
	db *storage.PostgresDB
}

func NewQuestionRepository(db *storage.PostgresDB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *models.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*models.Question, error) {
	var question models.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// FindBySubjectGrade 查詢指定科目/年級的題目，limit <= 0 表示不限數量
func (r *questionRepository) FindBySubjectGrade(subject, gradeLevel string, limit int) ([]models.Question, error) {
	var questions []models.Question
	tx := r.db.Where("subject = ? AND grade_level = ?", subject, gradeLevel)
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&questions).Error
	return questions, err
}

func (r *questionRepository) EnsureDefaults(subject, gradeLevel string) ([]models.Question, error) {
	for _, seed := range defaultQuestions[subject] {
		question := models.Question{
			Subject:      subject,
			GradeLevel:   gradeLevel,
			Difficulty:   seed.difficulty,
			Text:         seed.text,
			Options:      seed.options,
			CorrectIndex: seed.correct,
		}
		// 以科目/年級/題目文本為鍵，已存在的題目不會重複寫入
		err := r.db.Where("subject = ? AND grade_level = ? AND text = ?", subject, gradeLevel, seed.text).
			FirstOrCreate(&question).Error
		if err != nil {
			return nil, err
		}
	}

	return r.FindBySubjectGrade(subject, gradeLevel, 0)
}

type questionSeed struct {
	difficulty string
	text       string
	options    []string
	correct    int
}

// 各科目的預設題庫，題庫為空時的保底內容
var defaultQuestions = map[string][]questionSeed{
	"matematicas": {
		{"facil", "¿Cuánto es 7 x 8?", []string{"54", "56", "58", "64"}, 1},
		{"facil", "¿Cuál es el resultado de 15 + 27?", []string{"42", "41", "43", "44"}, 0},
		{"medio", "¿Cuál es la raíz cuadrada de 144?", []string{"10", "11", "12", "14"}, 2},
		{"medio", "Si x + 5 = 12, ¿cuánto vale x?", []string{"5", "6", "7", "8"}, 2},
		{"dificil", "¿Cuánto es el 25% de 200?", []string{"25", "40", "50", "75"}, 2},
	},
	"ciencias": {
		{"facil", "¿Cuál es el planeta más cercano al Sol?", []string{"Venus", "Mercurio", "Marte", "Tierra"}, 1},
		{"facil", "¿Qué gas respiramos principalmente para vivir?", []string{"Oxígeno", "Nitrógeno", "Hidrógeno", "Helio"}, 0},
		{"medio", "¿Cuál es la fórmula química del agua?", []string{"CO2", "H2O", "O2", "NaCl"}, 1},
		{"medio", "¿Qué órgano bombea la sangre en el cuerpo humano?", []string{"Pulmón", "Hígado", "Corazón", "Riñón"}, 2},
		{"dificil", "¿Cuál es la unidad básica de la vida?", []string{"El átomo", "La célula", "La molécula", "El tejido"}, 1},
	},
	"lengua": {
		{"facil", "¿Cuál de estas palabras es un sustantivo?", []string{"Correr", "Mesa", "Rápido", "Ayer"}, 1},
		{"facil", "¿Cuántas vocales tiene el alfabeto español?", []string{"4", "5", "6", "7"}, 1},
		{"medio", "¿Cuál es el sinónimo de \"contento\"?", []string{"Triste", "Feliz", "Enojado", "Cansado"}, 1},
		{"medio", "¿Qué signo cierra una pregunta en español?", []string{"!", ".", "?", ","}, 2},
		{"dificil", "¿Cómo se llama la persona que escribe novelas?", []string{"Poeta", "Novelista", "Periodista", "Editor"}, 1},
	},
	"sociales": {
		{"facil", "¿En qué continente está España?", []string{"América", "Asia", "Europa", "África"}, 2},
		{"facil", "¿Cuál es el océano más grande del mundo?", []string{"Atlántico", "Índico", "Ártico", "Pacífico"}, 3},
		{"medio", "¿Quién llegó a América en 1492?", []string{"Magallanes", "Cristóbal Colón", "Pizarro", "Cortés"}, 1},
		{"medio", "¿Cuál es la capital de Francia?", []string{"Londres", "Madrid", "París", "Roma"}, 2},
		{"dificil", "¿Cómo se llama el conjunto de leyes fundamentales de un país?", []string{"Decreto", "Constitución", "Reglamento", "Estatuto"}, 1},
	},
}
