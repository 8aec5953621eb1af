package abbr

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripTone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"zhòng", "zhong"},
		{"ài", "ai"},
		{"lǘ", "lu"},
		{"hao3", "hao"},
		{"Shān", "shan"},
		{"ń", "n"},
		{"", ""},
		{"123", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripTone(tt.in), tt.in)
	}
}

func TestResolveZeroInitial(t *testing.T) {
	r := NewResolver(fakeReadings{'爱': {"ài"}, '哦': {"ó"}, '欧': {"ōu"}, '安': {"ān"}}, nil, nil, nil)
	tests := []struct {
		char rune
		want string
	}{
		{'爱', "A"},
		{'哦', "O"},
		{'欧', "O"},
		{'安', "A"},
	}
	for _, tt := range tests {
		got, err := r.Resolve(tt.char)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, string(tt.char))
	}
}

func TestResolveZeroInitialTableWins(t *testing.T) {
	// 整音节命中零声母表时优先于首字母规则
	r := NewResolver(fakeReadings{'爱': {"ài"}}, nil, map[string]string{"ai": "Y"}, nil)
	got, err := r.Resolve('爱')
	require.NoError(t, err)
	assert.Equal(t, "Y", got)
}

func TestResolveRetroflex(t *testing.T) {
	r := NewResolver(testReadings, nil, nil, nil)
	table := BuiltinSpecialCases().Entries()

	// 台州 TZ、长春 CC、黄山 HS：第二个字分别是 zh、ch、sh 开头
	tests := []struct {
		char   rune
		phrase string
		want   string
	}{
		{'州', "台州", "Z"},
		{'春', "长春", "C"},
		{'山', "黄山", "S"},
		{'中', "", "Z"},
		{'吃', "", "C"},
	}
	for _, tt := range tests {
		got, err := r.Resolve(tt.char)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, string(tt.char))
		if tt.phrase != "" {
			assert.Equal(t, tt.want, table[tt.phrase][1:], tt.phrase)
		}
	}
}

func TestResolveRetroflexOrderIsConfigurable(t *testing.T) {
	r := NewResolver(testReadings, nil, nil, []RetroflexRule{{Prefix: "zh", Initial: "j"}})
	got, err := r.Resolve('中')
	require.NoError(t, err)
	assert.Equal(t, "J", got)

	got, err = r.Resolve('吃')
	require.NoError(t, err)
	assert.Equal(t, "C", got)
}

func TestResolveFirstReadingByDefault(t *testing.T) {
	r := NewResolver(testReadings, nil, nil, nil)
	got, err := r.Resolve('号')
	require.NoError(t, err)
	assert.Equal(t, "H", got)

	got, err = r.Resolve('乐')
	require.NoError(t, err)
	assert.Equal(t, "L", got)
}

func TestResolveUnsupported(t *testing.T) {
	r := NewResolver(fakeReadings{'嗯': {"̀"}}, nil, nil, nil)

	_, err := r.Resolve('鿿')
	var uce *UnsupportedCharacterError
	require.True(t, errors.As(err, &uce))
	assert.Equal(t, '鿿', uce.Char)

	// 读音去掉声调后为空
	_, err = r.Resolve('嗯')
	assert.True(t, errors.As(err, &uce))

	_, err = r.Resolve('α')
	assert.True(t, errors.As(err, &uce))
}

func TestFirstReading(t *testing.T) {
	assert.Equal(t, "", FirstReading(nil))
	assert.Equal(t, "hào", FirstReading([]string{"hào", "háo"}))
}
