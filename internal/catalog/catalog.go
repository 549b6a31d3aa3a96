// Package catalog holds the immutable 78-card tarot catalog.
//
// Order is stable: major arcana 0-21, then cups, wands, swords,
// pentacles, each ace through king. Built once at init; read-only
// afterwards, so lookups need no synchronization.
package catalog

import (
	"errors"
	"fmt"

	"github.com/minjilee/tarot-hours/internal/model"
)

// ErrNotFound reports an unknown card id.
var ErrNotFound = errors.New("card not found")

// Size is the number of cards in a full deck.
const Size = 78

var (
	cards []model.Card
	byID  map[string]model.Card
)

func init() {
	cards = buildDeck()
	byID = make(map[string]model.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
}

// Get returns the card with the given id.
func Get(id string) (model.Card, error) {
	c, ok := byID[id]
	if !ok {
		return model.Card{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c, nil
}

// All returns the full deck in catalog order.
func All() []model.Card {
	out := make([]model.Card, len(cards))
	copy(out, cards)
	return out
}

// IDAt returns the id of the card at catalog index i (0..77).
func IDAt(i int) (string, error) {
	if i < 0 || i >= len(cards) {
		return "", fmt.Errorf("catalog index %d out of range: %w", i, model.ErrInvalidArgument)
	}
	return cards[i].ID, nil
}

type majorDef struct {
	en, ko     string
	kw         [2][2]string // {en, ko} pairs
	descEN     string
	descKO     string
}

var majors = [22]majorDef{
	{"The Fool", "바보", [2][2]string{{"beginnings", "시작"}, {"spontaneity", "자유로움"}}, "A leap into the unknown with an open heart.", "열린 마음으로 미지의 세계에 발을 내딛습니다."},
	{"The Magician", "마법사", [2][2]string{{"willpower", "의지"}, {"manifestation", "실현"}}, "Every tool you need is already in your hands.", "필요한 모든 도구는 이미 당신 손에 있습니다."},
	{"The High Priestess", "여사제", [2][2]string{{"intuition", "직관"}, {"mystery", "신비"}}, "Listen to the quiet voice beneath the surface.", "표면 아래의 조용한 목소리에 귀를 기울이세요."},
	{"The Empress", "여황제", [2][2]string{{"abundance", "풍요"}, {"nurturing", "보살핌"}}, "Growth flourishes wherever care is given.", "보살핌이 있는 곳에 성장이 피어납니다."},
	{"The Emperor", "황제", [2][2]string{{"authority", "권위"}, {"structure", "질서"}}, "Order and discipline build a lasting foundation.", "질서와 규율이 단단한 기반을 만듭니다."},
	{"The Hierophant", "교황", [2][2]string{{"tradition", "전통"}, {"guidance", "가르침"}}, "Wisdom handed down still lights the way.", "전해 내려온 지혜가 여전히 길을 밝힙니다."},
	{"The Lovers", "연인", [2][2]string{{"union", "결합"}, {"choice", "선택"}}, "A meaningful bond asks for a wholehearted choice.", "의미 있는 인연은 온전한 선택을 요구합니다."},
	{"The Chariot", "전차", [2][2]string{{"determination", "결단"}, {"victory", "승리"}}, "Hold the reins firmly and drive forward.", "고삐를 단단히 쥐고 앞으로 나아가세요."},
	{"Strength", "힘", [2][2]string{{"courage", "용기"}, {"patience", "인내"}}, "Gentleness tames what force cannot.", "힘으로 안 되는 것을 부드러움이 길들입니다."},
	{"The Hermit", "은둔자", [2][2]string{{"introspection", "성찰"}, {"solitude", "고독"}}, "Step back and let your inner lamp guide you.", "한 걸음 물러나 내면의 등불을 따르세요."},
	{"Wheel of Fortune", "운명의 수레바퀴", [2][2]string{{"cycles", "순환"}, {"turning point", "전환점"}}, "The wheel turns; ride the change, don't fight it.", "수레바퀴는 돌아갑니다. 변화에 맞서지 말고 올라타세요."},
	{"Justice", "정의", [2][2]string{{"fairness", "공정"}, {"truth", "진실"}}, "Every action returns its honest weight.", "모든 행동은 정직한 무게로 되돌아옵니다."},
	{"The Hanged Man", "매달린 사람", [2][2]string{{"surrender", "내려놓음"}, {"new perspective", "새로운 시각"}}, "Seen upside down, the problem becomes the answer.", "거꾸로 보면 문제가 곧 답이 됩니다."},
	{"Death", "죽음", [2][2]string{{"endings", "끝"}, {"transformation", "변화"}}, "An ending clears the ground for what comes next.", "끝은 다음에 올 것을 위한 자리를 만듭니다."},
	{"Temperance", "절제", [2][2]string{{"balance", "균형"}, {"moderation", "조화"}}, "Blend the opposites patiently into one stream.", "상반된 것을 참을성 있게 하나로 섞으세요."},
	{"The Devil", "악마", [2][2]string{{"attachment", "집착"}, {"temptation", "유혹"}}, "The chain is loose; notice what you grip.", "사슬은 느슨합니다. 무엇을 붙잡고 있는지 보세요."},
	{"The Tower", "탑", [2][2]string{{"upheaval", "격변"}, {"revelation", "각성"}}, "What falls was never built to stand.", "무너지는 것은 애초에 서 있을 수 없던 것입니다."},
	{"The Star", "별", [2][2]string{{"hope", "희망"}, {"healing", "치유"}}, "After the storm, a clear light to steer by.", "폭풍이 지난 뒤, 길잡이가 되어 줄 맑은 빛."},
	{"The Moon", "달", [2][2]string{{"illusion", "환상"}, {"uncertainty", "불안"}}, "Not everything in the dark is what it seems.", "어둠 속 모든 것이 보이는 그대로는 아닙니다."},
	{"The Sun", "태양", [2][2]string{{"joy", "기쁨"}, {"vitality", "활력"}}, "Warmth and clarity touch everything today.", "따뜻함과 명료함이 오늘 모든 것에 닿습니다."},
	{"Judgement", "심판", [2][2]string{{"awakening", "부름"}, {"renewal", "재생"}}, "An honest reckoning opens a second life.", "정직한 돌아봄이 두 번째 삶을 엽니다."},
	{"The World", "세계", [2][2]string{{"completion", "완성"}, {"wholeness", "충만"}}, "The circle closes; the journey is complete.", "원이 닫히고 여정이 완성됩니다."},
}

type suitDef struct {
	suit    model.Suit
	element model.Element
	en, ko  string
	kwEN    string
	kwKO    string
	themeEN string
	themeKO string
}

var suits = [4]suitDef{
	{model.SuitCups, model.ElementWater, "Cups", "컵", "emotion", "감정", "matters of the heart", "마음의 일"},
	{model.SuitWands, model.ElementFire, "Wands", "완드", "passion", "열정", "drive and ambition", "추진력과 야망"},
	{model.SuitSwords, model.ElementAir, "Swords", "소드", "intellect", "이성", "thought and conflict", "생각과 갈등"},
	{model.SuitPentacles, model.ElementEarth, "Pentacles", "펜타클", "material", "물질", "work and resources", "일과 재물"},
}

type rankDef struct {
	en, ko string
	kwEN   string
	kwKO   string
}

var ranks = [14]rankDef{
	{"Ace", "에이스", "a seed", "씨앗"},
	{"Two", "2", "a pairing", "짝"},
	{"Three", "3", "first growth", "첫 성장"},
	{"Four", "4", "stability", "안정"},
	{"Five", "5", "friction", "마찰"},
	{"Six", "6", "harmony", "조화"},
	{"Seven", "7", "assessment", "점검"},
	{"Eight", "8", "movement", "움직임"},
	{"Nine", "9", "near completion", "완성 직전"},
	{"Ten", "10", "culmination", "정점"},
	{"Page", "페이지", "a message", "소식"},
	{"Knight", "나이트", "pursuit", "추진"},
	{"Queen", "퀸", "mastery within", "내면의 숙련"},
	{"King", "킹", "mastery without", "외면의 숙련"},
}

func buildDeck() []model.Card {
	deck := make([]model.Card, 0, Size)

	for i, m := range majors {
		deck = append(deck, model.Card{
			ID:   fmt.Sprintf("major-%02d", i),
			Name: model.LocalizedText{"en": m.en, "ko": m.ko},
			Keywords: []model.LocalizedText{
				{"en": m.kw[0][0], "ko": m.kw[0][1]},
				{"en": m.kw[1][0], "ko": m.kw[1][1]},
			},
			Description: model.LocalizedText{"en": m.descEN, "ko": m.descKO},
			Suit:        model.SuitMajor,
			Number:      i,
		})
	}

	for _, s := range suits {
		for j, r := range ranks {
			num := j + 1
			deck = append(deck, model.Card{
				ID:   fmt.Sprintf("%s-%02d", s.suit, num),
				Name: model.LocalizedText{
					"en": fmt.Sprintf("%s of %s", r.en, s.en),
					"ko": fmt.Sprintf("%s %s", s.ko, r.ko),
				},
				Keywords: []model.LocalizedText{
					{"en": r.kwEN, "ko": r.kwKO},
					{"en": s.kwEN, "ko": s.kwKO},
				},
				Description: model.LocalizedText{
					"en": fmt.Sprintf("%s in %s.", capitalize(r.kwEN), s.themeEN),
					"ko": fmt.Sprintf("%s에서의 %s.", s.themeKO, r.kwKO),
				},
				Suit:    s.suit,
				Number:  num,
				Element: s.element,
			})
		}
	}

	return deck
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
